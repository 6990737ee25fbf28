package spline

import (
	"context"

	"github.com/Tarif-dev/spline-mcp-server/internal/gateway"
)

// Declared defaults applied by the validator when the caller omits the field.
const (
	DefaultPageSize = 20
	DefaultQuality  = "standard"
	DefaultFPS      = 30
	DefaultEasing   = "linear"
)

var (
	objectTypes    = []string{"box", "sphere", "plane", "cylinder", "torus", "text"}
	animProperties = []string{"position", "rotation", "scale", "opacity", "color"}
	easings        = []string{"linear", "ease-in", "ease-out", "ease-in-out"}
	sceneFormats   = []string{"gltf", "glb", "obj", "fbx"}
	videoFormats   = []string{"mp4", "webm", "gif"}
	qualities      = []string{"draft", "standard", "high"}
)

func intPtr(i int) *int           { return &i }
func floatPtr(f float64) *float64 { return &f }

func stringArg(args map[string]any, key string) string {
	s, _ := args[key].(string)
	return s
}

// intArg reads an integer argument. The MCP transport decodes JSON numbers
// as float64; in-process callers may pass int.
func intArg(args map[string]any, key string) int {
	switch v := args[key].(type) {
	case float64:
		return int(v)
	case int:
		return v
	}
	return 0
}

func floatArg(args map[string]any, key string) float64 {
	switch v := args[key].(type) {
	case float64:
		return v
	case int:
		return float64(v)
	}
	return 0
}

func objectArg(args map[string]any, key string) map[string]any {
	m, _ := args[key].(map[string]any)
	return m
}

// sceneIDField is the contract every scene-scoped operation shares.
func sceneIDField() gateway.Field {
	return gateway.Field{
		Type:        gateway.FieldString,
		Description: "Scene identifier",
		Required:    true,
		Format:      gateway.FormatUUID,
	}
}

func pageFields() (gateway.Field, gateway.Field) {
	page := gateway.Field{
		Type:        gateway.FieldInteger,
		Description: "Page number, starting at 1",
		Min:         floatPtr(1),
		Default:     1,
	}
	pageSize := gateway.Field{
		Type:        gateway.FieldInteger,
		Description: "Results per page",
		Min:         floatPtr(1),
		Max:         floatPtr(100),
		Default:     DefaultPageSize,
	}
	return page, pageSize
}

// Operations declares every tool exposed through the gateway, bound to the
// given client. The returned slice is handed to gateway.NewRegistry once at
// startup.
func Operations(client *Client) []*gateway.Operation {
	page, pageSize := pageFields()

	return []*gateway.Operation{
		{
			Name:        "list_scenes",
			Description: "List the authenticated user's Spline scenes",
			Contract: gateway.Contract{
				"page":     page,
				"pageSize": pageSize,
			},
			Handler: func(ctx context.Context, args map[string]any) (any, error) {
				return client.ListScenes(ctx, intArg(args, "page"), intArg(args, "pageSize"))
			},
		},
		{
			Name:        "get_scene",
			Description: "Fetch a single scene by id",
			Contract: gateway.Contract{
				"sceneId": sceneIDField(),
			},
			Handler: func(ctx context.Context, args map[string]any) (any, error) {
				return client.GetScene(ctx, stringArg(args, "sceneId"))
			},
		},
		{
			Name:        "create_scene",
			Description: "Create a new Spline scene",
			Contract: gateway.Contract{
				"name": {
					Type:        gateway.FieldString,
					Description: "Scene name",
					Required:    true,
					MinLen:      intPtr(1),
					MaxLen:      intPtr(120),
				},
				"description": {
					Type:        gateway.FieldString,
					Description: "Optional scene description",
					MaxLen:      intPtr(2000),
				},
			},
			Handler: func(ctx context.Context, args map[string]any) (any, error) {
				return client.CreateScene(ctx, CreateSceneRequest{
					Name:        stringArg(args, "name"),
					Description: stringArg(args, "description"),
				})
			},
		},
		{
			Name:        "update_scene",
			Description: "Update a scene's name or description",
			Contract: gateway.Contract{
				"sceneId": sceneIDField(),
				"name": {
					Type:   gateway.FieldString,
					MinLen: intPtr(1),
					MaxLen: intPtr(120),
				},
				"description": {
					Type:   gateway.FieldString,
					MaxLen: intPtr(2000),
				},
			},
			Handler: func(ctx context.Context, args map[string]any) (any, error) {
				return client.UpdateScene(ctx, stringArg(args, "sceneId"), UpdateSceneRequest{
					Name:        stringArg(args, "name"),
					Description: stringArg(args, "description"),
				})
			},
		},
		{
			Name:        "delete_scene",
			Description: "Delete a scene",
			Contract: gateway.Contract{
				"sceneId": sceneIDField(),
			},
			Handler: func(ctx context.Context, args map[string]any) (any, error) {
				if err := client.DeleteScene(ctx, stringArg(args, "sceneId")); err != nil {
					return nil, err
				}
				return map[string]any{"deleted": true}, nil
			},
		},
		{
			Name:        "list_objects",
			Description: "List the objects in a scene",
			Contract: gateway.Contract{
				"sceneId":  sceneIDField(),
				"page":     page,
				"pageSize": pageSize,
			},
			Handler: func(ctx context.Context, args map[string]any) (any, error) {
				return client.ListObjects(ctx, stringArg(args, "sceneId"),
					intArg(args, "page"), intArg(args, "pageSize"))
			},
		},
		{
			Name:        "get_object",
			Description: "Fetch a single object within a scene",
			Contract: gateway.Contract{
				"sceneId": sceneIDField(),
				"objectId": {
					Type:        gateway.FieldString,
					Description: "Object identifier",
					Required:    true,
					Format:      gateway.FormatUUID,
				},
			},
			Handler: func(ctx context.Context, args map[string]any) (any, error) {
				return client.GetObject(ctx, stringArg(args, "sceneId"), stringArg(args, "objectId"))
			},
		},
		{
			Name:        "create_object",
			Description: "Add a 3D object to a scene",
			Contract: gateway.Contract{
				"sceneId": sceneIDField(),
				"name": {
					Type:        gateway.FieldString,
					Description: "Object name",
					Required:    true,
					MinLen:      intPtr(1),
					MaxLen:      intPtr(120),
				},
				"type": {
					Type:        gateway.FieldString,
					Description: "Object primitive type",
					Required:    true,
					Enum:        objectTypes,
				},
				"position": {
					Type:        gateway.FieldObject,
					Description: "Initial position as {x, y, z}",
				},
			},
			Handler: func(ctx context.Context, args map[string]any) (any, error) {
				return client.CreateObject(ctx, stringArg(args, "sceneId"), CreateObjectRequest{
					Name:     stringArg(args, "name"),
					Type:     stringArg(args, "type"),
					Position: objectArg(args, "position"),
				})
			},
		},
		{
			Name:        "update_object",
			Description: "Update an object's name or transform",
			Contract: gateway.Contract{
				"sceneId": sceneIDField(),
				"objectId": {
					Type:     gateway.FieldString,
					Required: true,
					Format:   gateway.FormatUUID,
				},
				"name": {
					Type:   gateway.FieldString,
					MinLen: intPtr(1),
					MaxLen: intPtr(120),
				},
				"position": {Type: gateway.FieldObject},
				"rotation": {Type: gateway.FieldObject},
				"scale":    {Type: gateway.FieldObject},
			},
			Handler: func(ctx context.Context, args map[string]any) (any, error) {
				return client.UpdateObject(ctx, stringArg(args, "sceneId"), stringArg(args, "objectId"),
					UpdateObjectRequest{
						Name:     stringArg(args, "name"),
						Position: objectArg(args, "position"),
						Rotation: objectArg(args, "rotation"),
						Scale:    objectArg(args, "scale"),
					})
			},
		},
		{
			Name:        "delete_object",
			Description: "Remove an object from a scene",
			Contract: gateway.Contract{
				"sceneId": sceneIDField(),
				"objectId": {
					Type:     gateway.FieldString,
					Required: true,
					Format:   gateway.FormatUUID,
				},
			},
			Handler: func(ctx context.Context, args map[string]any) (any, error) {
				if err := client.DeleteObject(ctx, stringArg(args, "sceneId"), stringArg(args, "objectId")); err != nil {
					return nil, err
				}
				return map[string]any{"deleted": true}, nil
			},
		},
		{
			Name:        "list_animations",
			Description: "List the animations in a scene",
			Contract: gateway.Contract{
				"sceneId": sceneIDField(),
			},
			Handler: func(ctx context.Context, args map[string]any) (any, error) {
				return client.ListAnimations(ctx, stringArg(args, "sceneId"))
			},
		},
		{
			Name:        "create_animation",
			Description: "Attach an animation to an object",
			Contract: gateway.Contract{
				"sceneId": sceneIDField(),
				"objectId": {
					Type:     gateway.FieldString,
					Required: true,
					Format:   gateway.FormatUUID,
				},
				"property": {
					Type:        gateway.FieldString,
					Description: "Animated property",
					Required:    true,
					Enum:        animProperties,
				},
				"duration": {
					Type:        gateway.FieldNumber,
					Description: "Duration in seconds",
					Required:    true,
					Min:         floatPtr(0.1),
					Max:         floatPtr(600),
				},
				"easing": {
					Type:    gateway.FieldString,
					Enum:    easings,
					Default: DefaultEasing,
				},
			},
			Handler: func(ctx context.Context, args map[string]any) (any, error) {
				return client.CreateAnimation(ctx, stringArg(args, "sceneId"), CreateAnimationRequest{
					ObjectID: stringArg(args, "objectId"),
					Property: stringArg(args, "property"),
					Duration: floatArg(args, "duration"),
					Easing:   stringArg(args, "easing"),
				})
			},
		},
		{
			Name:        "export_scene",
			Description: "Export a scene to a 3D file format",
			Contract: gateway.Contract{
				"sceneId": sceneIDField(),
				"format": {
					Type:        gateway.FieldString,
					Description: "Export file format",
					Required:    true,
					Enum:        sceneFormats,
				},
				"quality": {
					Type:    gateway.FieldString,
					Enum:    qualities,
					Default: DefaultQuality,
				},
			},
			Handler: func(ctx context.Context, args map[string]any) (any, error) {
				return client.ExportScene(ctx, stringArg(args, "sceneId"), ExportSceneRequest{
					Format:  stringArg(args, "format"),
					Quality: stringArg(args, "quality"),
				})
			},
		},
		{
			Name:        "export_image",
			Description: "Render a scene to a still image",
			Contract: gateway.Contract{
				"sceneId": sceneIDField(),
				"width": {
					Type:    gateway.FieldInteger,
					Min:     floatPtr(16),
					Max:     floatPtr(8192),
					Default: 1920,
				},
				"height": {
					Type:    gateway.FieldInteger,
					Min:     floatPtr(16),
					Max:     floatPtr(8192),
					Default: 1080,
				},
				"quality": {
					Type:    gateway.FieldString,
					Enum:    qualities,
					Default: DefaultQuality,
				},
			},
			Handler: func(ctx context.Context, args map[string]any) (any, error) {
				return client.ExportImage(ctx, stringArg(args, "sceneId"), ExportImageRequest{
					Width:   intArg(args, "width"),
					Height:  intArg(args, "height"),
					Quality: stringArg(args, "quality"),
				})
			},
		},
		{
			Name:        "export_video",
			Description: "Render a scene's animations to video",
			Contract: gateway.Contract{
				"sceneId": sceneIDField(),
				"format": {
					Type:    gateway.FieldString,
					Enum:    videoFormats,
					Default: "mp4",
				},
				"fps": {
					Type:        gateway.FieldInteger,
					Description: "Frames per second",
					Min:         floatPtr(1),
					Max:         floatPtr(120),
					Default:     DefaultFPS,
				},
				"duration": {
					Type:        gateway.FieldNumber,
					Description: "Duration in seconds",
					Required:    true,
					Min:         floatPtr(0.1),
					Max:         floatPtr(600),
				},
			},
			Handler: func(ctx context.Context, args map[string]any) (any, error) {
				return client.ExportVideo(ctx, stringArg(args, "sceneId"), ExportVideoRequest{
					Format:   stringArg(args, "format"),
					FPS:      intArg(args, "fps"),
					Duration: floatArg(args, "duration"),
				})
			},
		},
	}
}
