package entities

import "time"

// Cluster is an administrative grouping of organizations.
type Cluster struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	About       string    `json:"about"`
	Country     string    `json:"country"`
	Districts   []string  `json:"districts"`
	MemberCount int64     `json:"member_count"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// ClusterMember is an organization's membership in a cluster.
type ClusterMember struct {
	ClusterID    string       `json:"cluster_id"`
	Organization Organization `json:"organization"`
	JoinedAt     time.Time    `json:"joined_at"`
}

// ClusterFilter narrows cluster listings.
type ClusterFilter struct {
	PageRequest
	Country string
}
