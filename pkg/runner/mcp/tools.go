package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"tableflip.dev/tabler/pkg/dashboard"
)

func registerTools(srv *server.MCPServer, svc *Service) {
	registerListDashboardsTool(srv, svc)
	registerLoadTableTool(srv, svc)
	registerRefreshTableTool(srv, svc)
	registerExportURLTool(srv, svc)
}

func tableOptions(description string) []mcp.ToolOption {
	return []mcp.ToolOption{
		mcp.WithDescription(description),
		mcp.WithString("dashboard",
			mcp.Required(),
			mcp.Description(dashboardDescription()),
		),
		mcp.WithString("from",
			mcp.Description("First year of the range. Defaults to the last range used, or the current year."),
		),
		mcp.WithString("to",
			mcp.Description("Last year of the range. Defaults to the last range used, or the current year."),
		),
	}
}

// dashboardDescription names every dashboard with its aliases.
func dashboardDescription() string {
	var names []string
	for _, d := range dashboard.Defaults() {
		n := d.Name
		if len(d.Aliases) > 0 {
			n += " (" + strings.Join(d.Aliases, ", ") + ")"
		}
		names = append(names, n)
	}
	return "Dashboard name or alias: " + strings.Join(names, ", ") + "."
}

func registerListDashboardsTool(srv *server.MCPServer, svc *Service) {
	tool := mcp.NewTool(
		"list_dashboards",
		mcp.WithDescription("List the dashboards, their columns and export formats."),
	)

	srv.AddTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		dashboards := svc.ListDashboards()
		return toJSONResult(map[string]any{
			"dashboards": dashboards,
			"count":      len(dashboards),
		})
	})
}

func registerLoadTableTool(srv *server.MCPServer, svc *Service) {
	tool := mcp.NewTool("load_table", tableOptions("Fetch the stored rows of a dashboard and return the rendered table.")...)

	srv.AddTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		req, err := bindTable(request)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		res, err := svc.Load(ctx, req)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return toJSONResult(res)
	})
}

func registerRefreshTableTool(srv *server.MCPServer, svc *Service) {
	tool := mcp.NewTool("refresh_table", tableOptions("Ask the backend to scrape or fetch fresh data, then return the rendered table.")...)

	srv.AddTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		req, err := bindTable(request)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		res, err := svc.Refresh(ctx, req)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return toJSONResult(res)
	})
}

func registerExportURLTool(srv *server.MCPServer, svc *Service) {
	opts := append(tableOptions("Build the download URL of a dashboard export."),
		mcp.WithString("format",
			mcp.Description("Export format such as csv, xlsx or excel. Defaults to the first one the dashboard offers."),
		),
	)
	tool := mcp.NewTool("export_url", opts...)

	srv.AddTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		req, err := bindTable(request)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		link, err := svc.ExportURL(ctx, req, request.GetString("format", ""))
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return toJSONResult(link)
	})
}

func bindTable(request mcp.CallToolRequest) (TableRequest, error) {
	var args struct {
		Dashboard string `json:"dashboard"`
		From      string `json:"from"`
		To        string `json:"to"`
	}
	if err := request.BindArguments(&args); err != nil {
		return TableRequest{}, fmt.Errorf("invalid arguments: %w", err)
	}
	if args.Dashboard == "" {
		return TableRequest{}, fmt.Errorf("dashboard is required")
	}
	return TableRequest{Dashboard: args.Dashboard, From: args.From, To: args.To}, nil
}

func toJSONResult(data any) (*mcp.CallToolResult, error) {
	b, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("marshal error: %v", err)), nil
	}
	return mcp.NewToolResultText(string(b)), nil
}
