package entities

import "time"

// Organization is an implementing partner registered under a project and optionally a cluster.
type Organization struct {
	ID               string    `json:"id"`
	Name             string    `json:"name"`
	Acronym          string    `json:"acronym"`
	ClusterID        *string   `json:"cluster_id,omitempty"`
	ProjectID        *string   `json:"project_id,omitempty"`
	Country          string    `json:"country"`
	District         string    `json:"district"`
	SubCounty        string    `json:"sub_county"`
	OperationAddress string    `json:"operation_address"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}

// OrganizationFilter narrows organization listings.
type OrganizationFilter struct {
	PageRequest
	ClusterID string
	ProjectID string
	District  string
}
