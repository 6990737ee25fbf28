package spline

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/Tarif-dev/spline-mcp-server/internal/core"
)

// DefaultBaseURL is the production Spline API endpoint.
const DefaultBaseURL = "https://api.spline.design/v1"

// maxErrorBodyBytes bounds how much of an error response body we read when
// the backend returns something that is not our error JSON shape.
const maxErrorBodyBytes = 4096

// Client is the Spline REST API client shared by all operation handlers.
// It is safe for concurrent use.
type Client struct {
	baseURL    string
	token      string
	httpClient *http.Client
}

// NewClient creates a client for the given base URL, authenticating every
// request with the bearer token.
func NewClient(baseURL, token string) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		token:   token,
		// The per-call deadline comes from the gateway's context; this is a
		// backstop for calls made outside a dispatch.
		httpClient: &http.Client{Timeout: 60 * time.Second},
	}
}

// apiErrorBody is the backend's error response shape.
type apiErrorBody struct {
	Error struct {
		Message string `json:"message"`
	} `json:"error"`
	Message string `json:"message"`
}

// do executes one request against the API and decodes the JSON response into
// out when out is non-nil. The gateway's correlation id, when present on the
// context, is forwarded as the X-Request-Id header so backend logs line up
// with gateway logs; calls made outside a dispatch get a fresh id.
func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var reqBody io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode request body: %w", err)
		}
		reqBody = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}

	req.Header.Set("Authorization", "Bearer "+c.token)
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	requestID := core.RequestIDFrom(ctx)
	if requestID == "" {
		requestID = uuid.NewString()
	}
	req.Header.Set("X-Request-Id", requestID)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("spline request failed: %w", err)
	}
	defer core.LogDeferredError(resp.Body.Close)

	if resp.StatusCode == http.StatusNotFound {
		return fmt.Errorf("%s %s: %w", method, path, core.ErrNotFound)
	}
	if resp.StatusCode >= 400 {
		return core.NewAPIError(resp.StatusCode, readErrorMessage(resp.Body))
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("failed to decode response: %w", err)
		}
	}
	return nil
}

// readErrorMessage extracts a human message from an error response, falling
// back to the raw body when it is not the expected JSON shape.
func readErrorMessage(body io.Reader) string {
	raw, err := io.ReadAll(io.LimitReader(body, maxErrorBodyBytes))
	if err != nil || len(raw) == 0 {
		return "no error details provided"
	}

	var parsed apiErrorBody
	if err := json.Unmarshal(raw, &parsed); err == nil {
		if parsed.Error.Message != "" {
			return parsed.Error.Message
		}
		if parsed.Message != "" {
			return parsed.Message
		}
	}
	return strings.TrimSpace(string(raw))
}

func pageQuery(page, pageSize int) string {
	q := url.Values{}
	q.Set("page", strconv.Itoa(page))
	q.Set("pageSize", strconv.Itoa(pageSize))
	return "?" + q.Encode()
}

// ListScenes returns one page of the caller's scenes.
func (c *Client) ListScenes(ctx context.Context, page, pageSize int) (*SceneList, error) {
	var list SceneList
	if err := c.do(ctx, http.MethodGet, "/scenes"+pageQuery(page, pageSize), nil, &list); err != nil {
		return nil, err
	}
	return &list, nil
}

// GetScene fetches one scene by id.
func (c *Client) GetScene(ctx context.Context, sceneID string) (*Scene, error) {
	var scene Scene
	if err := c.do(ctx, http.MethodGet, "/scenes/"+sceneID, nil, &scene); err != nil {
		return nil, err
	}
	return &scene, nil
}

// CreateScene creates a new scene.
func (c *Client) CreateScene(ctx context.Context, req CreateSceneRequest) (*Scene, error) {
	var scene Scene
	if err := c.do(ctx, http.MethodPost, "/scenes", req, &scene); err != nil {
		return nil, err
	}
	return &scene, nil
}

// UpdateScene updates an existing scene.
func (c *Client) UpdateScene(ctx context.Context, sceneID string, req UpdateSceneRequest) (*Scene, error) {
	var scene Scene
	if err := c.do(ctx, http.MethodPatch, "/scenes/"+sceneID, req, &scene); err != nil {
		return nil, err
	}
	return &scene, nil
}

// DeleteScene deletes a scene.
func (c *Client) DeleteScene(ctx context.Context, sceneID string) error {
	return c.do(ctx, http.MethodDelete, "/scenes/"+sceneID, nil, nil)
}

// ListObjects returns one page of a scene's objects.
func (c *Client) ListObjects(ctx context.Context, sceneID string, page, pageSize int) (*ObjectList, error) {
	var list ObjectList
	path := "/scenes/" + sceneID + "/objects" + pageQuery(page, pageSize)
	if err := c.do(ctx, http.MethodGet, path, nil, &list); err != nil {
		return nil, err
	}
	return &list, nil
}

// GetObject fetches one object within a scene.
func (c *Client) GetObject(ctx context.Context, sceneID, objectID string) (*Object, error) {
	var object Object
	if err := c.do(ctx, http.MethodGet, "/scenes/"+sceneID+"/objects/"+objectID, nil, &object); err != nil {
		return nil, err
	}
	return &object, nil
}

// CreateObject adds an object to a scene.
func (c *Client) CreateObject(ctx context.Context, sceneID string, req CreateObjectRequest) (*Object, error) {
	var object Object
	if err := c.do(ctx, http.MethodPost, "/scenes/"+sceneID+"/objects", req, &object); err != nil {
		return nil, err
	}
	return &object, nil
}

// UpdateObject updates an object within a scene.
func (c *Client) UpdateObject(ctx context.Context, sceneID, objectID string, req UpdateObjectRequest) (*Object, error) {
	var object Object
	if err := c.do(ctx, http.MethodPatch, "/scenes/"+sceneID+"/objects/"+objectID, req, &object); err != nil {
		return nil, err
	}
	return &object, nil
}

// DeleteObject removes an object from a scene.
func (c *Client) DeleteObject(ctx context.Context, sceneID, objectID string) error {
	return c.do(ctx, http.MethodDelete, "/scenes/"+sceneID+"/objects/"+objectID, nil, nil)
}

// ListAnimations returns a scene's animations.
func (c *Client) ListAnimations(ctx context.Context, sceneID string) (*AnimationList, error) {
	var list AnimationList
	if err := c.do(ctx, http.MethodGet, "/scenes/"+sceneID+"/animations", nil, &list); err != nil {
		return nil, err
	}
	return &list, nil
}

// CreateAnimation attaches an animation to an object in a scene.
func (c *Client) CreateAnimation(ctx context.Context, sceneID string, req CreateAnimationRequest) (*Animation, error) {
	var animation Animation
	if err := c.do(ctx, http.MethodPost, "/scenes/"+sceneID+"/animations", req, &animation); err != nil {
		return nil, err
	}
	return &animation, nil
}

// ExportScene starts a 3D-format export of a scene.
func (c *Client) ExportScene(ctx context.Context, sceneID string, req ExportSceneRequest) (*ExportJob, error) {
	var job ExportJob
	if err := c.do(ctx, http.MethodPost, "/scenes/"+sceneID+"/export", req, &job); err != nil {
		return nil, err
	}
	return &job, nil
}

// ExportImage starts a still-image export of a scene.
func (c *Client) ExportImage(ctx context.Context, sceneID string, req ExportImageRequest) (*ExportJob, error) {
	var job ExportJob
	if err := c.do(ctx, http.MethodPost, "/scenes/"+sceneID+"/export/image", req, &job); err != nil {
		return nil, err
	}
	return &job, nil
}

// ExportVideo starts a video export of a scene.
func (c *Client) ExportVideo(ctx context.Context, sceneID string, req ExportVideoRequest) (*ExportJob, error) {
	var job ExportJob
	if err := c.do(ctx, http.MethodPost, "/scenes/"+sceneID+"/export/video", req, &job); err != nil {
		return nil, err
	}
	return &job, nil
}
