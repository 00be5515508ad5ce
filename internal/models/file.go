package models

type FileInfo struct {
	Name string `json:"name" example:"report.txt"`
	Size int64  `json:"size" example:"1024"`
}

type FileEvent struct {
	EventType string      `json:"event_type" example:"file_uploaded"`
	Payload   interface{} `json:"payload"`
}

type FileUploadedPayload struct {
	Name       string `json:"name"`
	Size       int64  `json:"size"`
	UploadedBy string `json:"uploaded_by"`
}
