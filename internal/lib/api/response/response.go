package response

type ErrResponse struct {
	Error string `json:"error"`
}

type StatusResponse struct {
	Status string `json:"status"`
}

func Error(msg string) ErrResponse {
	return ErrResponse{Error: msg}
}

func OK() StatusResponse {
	return StatusResponse{Status: "ok"}
}
