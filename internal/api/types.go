package api

import "github.com/samcharles93/cbtool/internal/report"

// ValidateResponse is returned by the validate and package endpoints.
type ValidateResponse struct {
	*report.Report
	CreatedAt int64 `json:"created_at"`
}

type ResponseError struct {
	Message  string   `json:"message,omitempty"`
	Type     string   `json:"type,omitempty"`
	Code     string   `json:"code,omitempty"`
	Param    string   `json:"param,omitempty"`
	ReportID string   `json:"report_id,omitempty"`
	Flags    []string `json:"flags,omitempty"`
}

type ErrorResponse struct {
	Error ResponseError `json:"error"`
}

type DeleteReportResp struct {
	ID      string `json:"id"`
	Object  string `json:"object"`
	Deleted bool   `json:"deleted"`
}

type HealthResponse struct {
	Status  string `json:"status"`
	Version string `json:"version"`
}
