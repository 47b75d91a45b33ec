package dimstd

import "time"

// DimensionalStandard ties a standard designation to a piping component.
type DimensionalStandard struct {
	ID          string    `json:"id"`
	ComponentID int       `json:"component_id"`
	Standard    string    `json:"dimensional_standard"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// DimStd is a dimension-standard value scoped to a g_type, optionally bound
// to a project. An empty ProjectID marks an application-wide default.
type DimStd struct {
	ID        string    `json:"id"`
	ProjectID string    `json:"project_id,omitempty"`
	GType     string    `json:"g_type"`
	DimStd    string    `json:"dim_std"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// DefaultSchedule is a catalog row describing a pipe schedule designation.
type DefaultSchedule struct {
	ID        string `json:"id"`
	Sch1Sch2  string `json:"sch1_sch2"`
	Code      string `json:"code"`
	CCode     string `json:"c_code"`
	SchDesc   string `json:"sch_desc"`
	ArrangeOD *int   `json:"arrange_od,omitempty"`
}
