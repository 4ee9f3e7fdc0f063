package model

type SuccessMessageResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

type ErrorResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Error   string `json:"error,omitempty"`
}

type SuccessResponse[T any] struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
	Data    T      `json:"data,omitempty"`
}

type AchievementsResponse struct {
	Success      bool          `json:"success"`
	Achievements []Achievement `json:"achievements"`
}

type UpdateResponse struct {
	Success       bool   `json:"success"`
	Message       string `json:"message"`
	ModifiedCount int64  `json:"modifiedCount"`
}

type BatchUpdateResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	BatchResult
}

type SubmitResponse struct {
	Success    bool   `json:"success"`
	Message    string `json:"message"`
	DocumentID string `json:"documentId"`
}

type Sections struct {
	Top10      []Achievement            `json:"top10"`
	Unarchived []Achievement            `json:"unarchived"`
	Archived   []Achievement            `json:"archived"`
	ByCategory map[string][]Achievement `json:"byCategory,omitempty"`
}

type AdminViewResponse struct {
	Success  bool          `json:"success"`
	Category string        `json:"category"`
	Count    int           `json:"count"`
	Items    []Achievement `json:"items"`
	Sections Sections      `json:"sections"`
}

type OrderChange struct {
	ID       string `json:"_id"`
	OldOrder *int   `json:"oldOrder,omitempty"`
	Order    int    `json:"order"`
}

type ReorderResponse struct {
	Success bool          `json:"success"`
	Message string        `json:"message"`
	Changes []OrderChange `json:"changes"`
}

type ToggleResponse struct {
	Success      bool   `json:"success"`
	ID           string `json:"_id"`
	Archived     bool   `json:"archived"`
	OverAllTop10 bool   `json:"overAllTop10"`
}

type OTPResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Token   string `json:"token,omitempty"`
}

type CheckAdminResponse struct {
	IsAdmin bool `json:"isAdmin"`
}

type HealthResponse struct {
	Status string `json:"status"`
}

type DecryptResponse struct {
	Payload *JWTClaims `json:"payload"`
}
