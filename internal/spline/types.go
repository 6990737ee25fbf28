// Package spline implements the HTTP client for the Spline design API and
// declares the tool operations exposed through the gateway.
package spline

// Scene is one Spline scene as returned by the backend.
type Scene struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	CreatedAt   string `json:"createdAt,omitempty"`
	UpdatedAt   string `json:"updatedAt,omitempty"`
}

// SceneList is one page of scenes.
type SceneList struct {
	Scenes   []Scene `json:"scenes"`
	Page     int     `json:"page"`
	PageSize int     `json:"pageSize"`
	Total    int     `json:"total"`
}

// Object is one 3D object within a scene.
type Object struct {
	ID       string         `json:"id"`
	SceneID  string         `json:"sceneId"`
	Name     string         `json:"name"`
	Type     string         `json:"type"`
	Position map[string]any `json:"position,omitempty"`
	Rotation map[string]any `json:"rotation,omitempty"`
	Scale    map[string]any `json:"scale,omitempty"`
}

// ObjectList is one page of objects within a scene.
type ObjectList struct {
	Objects  []Object `json:"objects"`
	Page     int      `json:"page"`
	PageSize int      `json:"pageSize"`
	Total    int      `json:"total"`
}

// Animation is one animation attached to an object.
type Animation struct {
	ID       string  `json:"id"`
	SceneID  string  `json:"sceneId"`
	ObjectID string  `json:"objectId"`
	Property string  `json:"property"`
	Duration float64 `json:"duration"`
	Easing   string  `json:"easing"`
}

// AnimationList holds a scene's animations.
type AnimationList struct {
	Animations []Animation `json:"animations"`
}

// ExportJob is the backend's handle for an export started by one of the
// export operations. The download URL appears once the job completes.
type ExportJob struct {
	ID          string `json:"id"`
	SceneID     string `json:"sceneId"`
	Format      string `json:"format"`
	Status      string `json:"status"`
	DownloadURL string `json:"downloadUrl,omitempty"`
}

// CreateSceneRequest is the body for scene creation.
type CreateSceneRequest struct {
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
}

// UpdateSceneRequest is the body for scene updates. Empty fields are left
// unchanged by the backend.
type UpdateSceneRequest struct {
	Name        string `json:"name,omitempty"`
	Description string `json:"description,omitempty"`
}

// CreateObjectRequest is the body for object creation.
type CreateObjectRequest struct {
	Name     string         `json:"name"`
	Type     string         `json:"type"`
	Position map[string]any `json:"position,omitempty"`
}

// UpdateObjectRequest is the body for object updates.
type UpdateObjectRequest struct {
	Name     string         `json:"name,omitempty"`
	Position map[string]any `json:"position,omitempty"`
	Rotation map[string]any `json:"rotation,omitempty"`
	Scale    map[string]any `json:"scale,omitempty"`
}

// CreateAnimationRequest is the body for animation creation.
type CreateAnimationRequest struct {
	ObjectID string  `json:"objectId"`
	Property string  `json:"property"`
	Duration float64 `json:"duration"`
	Easing   string  `json:"easing"`
}

// ExportSceneRequest is the body for scene exports.
type ExportSceneRequest struct {
	Format  string `json:"format"`
	Quality string `json:"quality"`
}

// ExportImageRequest is the body for still-image exports.
type ExportImageRequest struct {
	Width   int    `json:"width"`
	Height  int    `json:"height"`
	Quality string `json:"quality"`
}

// ExportVideoRequest is the body for video exports.
type ExportVideoRequest struct {
	Format   string  `json:"format"`
	FPS      int     `json:"fps"`
	Duration float64 `json:"duration"`
}
