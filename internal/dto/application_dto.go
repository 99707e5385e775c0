package dto

import "github.com/google/uuid"

// CreateApplicationRequest accepts both the current field names (jobTitle,
// companyName, applicationDate) and the legacy ones (title, company,
// dateApplied). Resolution happens in one place: the Canonical* methods, with
// the current name winning when both are supplied.
type CreateApplicationRequest struct {
	JobTitle        string  `json:"jobTitle"`
	Title           string  `json:"title"`
	CompanyName     string  `json:"companyName"`
	Company         string  `json:"company"`
	Status          string  `json:"status"`
	ApplicationDate string  `json:"applicationDate"`
	DateApplied     string  `json:"dateApplied"`
	Notes           *string `json:"notes"`
	Location        *string `json:"location"`
	Salary          *string `json:"salary"`
	CompanyLogo     *string `json:"companyLogo"`
}

func (r *CreateApplicationRequest) CanonicalTitle() string {
	if r.JobTitle != "" {
		return r.JobTitle
	}
	return r.Title
}

func (r *CreateApplicationRequest) CanonicalCompany() string {
	if r.CompanyName != "" {
		return r.CompanyName
	}
	return r.Company
}

func (r *CreateApplicationRequest) CanonicalDate() string {
	if r.ApplicationDate != "" {
		return r.ApplicationDate
	}
	return r.DateApplied
}

type UpdateApplicationRequest struct {
	JobTitle        *string `json:"jobTitle"`
	Title           *string `json:"title"`
	CompanyName     *string `json:"companyName"`
	Company         *string `json:"company"`
	Status          *string `json:"status"`
	ApplicationDate *string `json:"applicationDate"`
	DateApplied     *string `json:"dateApplied"`
	Notes           *string `json:"notes"`
	Location        *string `json:"location"`
	Salary          *string `json:"salary"`
	CompanyLogo     *string `json:"companyLogo"`
}

func (r *UpdateApplicationRequest) CanonicalTitle() *string {
	if r.JobTitle != nil {
		return r.JobTitle
	}
	return r.Title
}

func (r *UpdateApplicationRequest) CanonicalCompany() *string {
	if r.CompanyName != nil {
		return r.CompanyName
	}
	return r.Company
}

func (r *UpdateApplicationRequest) CanonicalDate() *string {
	if r.ApplicationDate != nil {
		return r.ApplicationDate
	}
	return r.DateApplied
}

type ApplicationResponse struct {
	ID              uuid.UUID `json:"id"`
	JobTitle        string    `json:"jobTitle"`
	CompanyName     string    `json:"companyName"`
	ApplicationDate string    `json:"applicationDate"`
	Status          string    `json:"status"`
	Notes           *string   `json:"notes"`
	Location        *string   `json:"location"`
	Salary          *string   `json:"salary"`
	CompanyLogo     *string   `json:"companyLogo"`
	CreatedAt       string    `json:"createdAt"`
	UpdatedAt       string    `json:"updatedAt"`
}

type ApplicationListResponse struct {
	Applications []ApplicationResponse `json:"applications"`
	Pagination   Pagination            `json:"pagination"`
}

type BulkDeleteRequest struct {
	IDs []uuid.UUID `json:"ids"`
}

type BulkDeleteResponse struct {
	Message      string `json:"message"`
	DeletedCount int64  `json:"deletedCount"`
}
