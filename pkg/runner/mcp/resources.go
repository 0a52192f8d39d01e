package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

func registerResources(srv *server.MCPServer, svc *Service) {
	registerDashboardsResource(srv, svc)
	registerDashboardTemplate(srv, svc)
	registerRangesResource(srv, svc)
}

func registerDashboardsResource(srv *server.MCPServer, svc *Service) {
	resource := mcp.NewResource(
		"tabler://dashboards",
		"Dashboards",
		mcp.WithResourceDescription("All dashboards with their columns and export formats."),
		mcp.WithMIMEType("application/json"),
	)

	srv.AddResource(resource, func(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
		dashboards := svc.ListDashboards()
		payload := map[string]any{
			"dashboards": dashboards,
			"count":      len(dashboards),
		}
		return encodeResourceJSON(request.Params.URI, payload)
	})
}

func registerDashboardTemplate(srv *server.MCPServer, svc *Service) {
	template := mcp.NewResourceTemplate(
		"tabler://dashboards/{name}",
		"Dashboard Details",
		mcp.WithTemplateDescription("Columns, endpoints and export formats of one dashboard."),
		mcp.WithTemplateMIMEType("application/json"),
	)

	srv.AddResourceTemplate(template, func(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
		name := argument(request.Params.Arguments["name"])
		if name == "" {
			return nil, fmt.Errorf("dashboard name is required")
		}

		summary, err := svc.Describe(name)
		if err != nil {
			return nil, err
		}
		return encodeResourceJSON(request.Params.URI, map[string]any{"dashboard": summary})
	})
}

func registerRangesResource(srv *server.MCPServer, svc *Service) {
	resource := mcp.NewResource(
		"tabler://ranges",
		"Saved Ranges",
		mcp.WithResourceDescription("The last year range used on each dashboard."),
		mcp.WithMIMEType("application/json"),
	)

	srv.AddResource(resource, func(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
		ranges, err := svc.SavedRanges(ctx)
		if err != nil {
			return nil, err
		}
		return encodeResourceJSON(request.Params.URI, map[string]any{
			"ranges": ranges,
			"count":  len(ranges),
		})
	})
}

// argument unwraps a template variable, which may arrive as a string or a
// single element list.
func argument(v any) string {
	switch t := v.(type) {
	case string:
		return t
	case []string:
		if len(t) > 0 {
			return t[0]
		}
	}
	return ""
}

func encodeResourceJSON(uri string, payload any) ([]mcp.ResourceContents, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      uri,
			MIMEType: "application/json",
			Text:     string(data),
		},
	}, nil
}
