package dtos

type UpdateJobStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

type UpdateUserStatusRequest struct {
	IsActive *bool `json:"isActive" binding:"required"`
}

type DashboardStats struct {
	TotalUsers       int64 `json:"totalUsers"`
	TotalJobs        int64 `json:"totalJobs"`
	TotalEmployers   int64 `json:"totalEmployers"`
	TotalJobSeekers  int64 `json:"totalJobSeekers"`
	PendingApprovals int64 `json:"pendingApprovals"`
}
