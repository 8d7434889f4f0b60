package bereal

// Wire types for the provider API.

type sendCodeRequest struct {
	Phone string `json:"phone"`
}

type sendCodeResponse struct {
	Data struct {
		OTPSession string `json:"otpSession"`
	} `json:"data"`
}

type verifyCodeRequest struct {
	OTPSession string `json:"otpSession"`
	Code       string `json:"code"`
}

type verifyCodeResponse struct {
	Data struct {
		Token string `json:"token"`
	} `json:"data"`
}

type memoriesResponse struct {
	Data []memoryItem `json:"data"`
}

type memoryItem struct {
	MemoryDay string    `json:"memoryDay"`
	Primary   mediaItem `json:"primary"`
	Secondary mediaItem `json:"secondary"`
}

type mediaItem struct {
	URL string `json:"url"`
}

type errorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}
