package service

import "time"

// encodeTimeout bounds the ffmpeg run. Encoding cost scales with input size,
// so the budget is a base allowance plus a per-frame allowance.
func (s *Service) encodeTimeout(frameCount int) time.Duration {
	return s.config.EncodeBaseTimeout + time.Duration(frameCount)*s.config.EncodePerFrameTime
}
