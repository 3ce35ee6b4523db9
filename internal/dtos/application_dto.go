package dtos

// ApplyRequest is the JSON body of POST /jobs/:jobId/apply. Multipart
// submissions carry the same fields as form values plus a "resume" file.
type ApplyRequest struct {
	CoverLetter string `json:"coverLetter" form:"coverLetter"`
	ResumeURL   string `json:"resumeUrl" form:"resumeUrl"`
}

type UpdateApplicationStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

type MyJobsApplicationsQuery struct {
	Status string `form:"status"`
	JobID  string `form:"jobId"`
}
