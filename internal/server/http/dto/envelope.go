package dto

// Response is the JSON envelope shared by every endpoint.
type Response struct {
	Success bool          `json:"success"`
	Message string        `json:"message,omitempty"`
	Data    any           `json:"data,omitempty"`
	User    *UserResponse `json:"user,omitempty"`
	Errors  []FieldError  `json:"errors,omitempty"`
}

// FieldError reports a rejected request field.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// OK wraps data in a successful envelope.
func OK(data any) Response {
	return Response{Success: true, Data: data}
}

// Fail builds an unsuccessful envelope.
func Fail(message string, fields ...FieldError) Response {
	return Response{Success: false, Message: message, Errors: fields}
}

// NearbyQuery holds the query string of the geo lookups.
type NearbyQuery struct {
	Lat    *float64 `form:"lat" binding:"required,gte=-90,lte=90"`
	Lng    *float64 `form:"lng" binding:"required,gte=-180,lte=180"`
	Radius float64  `form:"radius" binding:"omitempty,gt=0,lte=100"`
}
