package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/medisense/backend/internal/application/services"
	"github.com/medisense/backend/internal/domain/entities"
)

// topConditions is how many runner-up conditions infer_diagnosis returns
const topConditions = 3

// Server exposes the stateless diagnosis, ranking and location operations as MCP tools
type Server struct {
	mcpServer *server.MCPServer
	inference *services.InferenceService
	ranking   *services.RankingService
	locations *services.LocationService
}

func NewServer(
	inference *services.InferenceService,
	ranking *services.RankingService,
	locations *services.LocationService,
	version string,
) *Server {
	s := &Server{
		mcpServer: server.NewMCPServer(
			"MediSense Vellore",
			version,
			server.WithToolCapabilities(true),
		),
		inference: inference,
		ranking:   ranking,
		locations: locations,
	}

	s.registerTools()
	return s
}

func (s *Server) GetMCPServer() *server.MCPServer {
	return s.mcpServer
}

func (s *Server) registerTools() {
	s.mcpServer.AddTool(
		mcp.NewTool(
			"list_symptoms",
			mcp.WithDescription("List the symptom names accepted by infer_diagnosis"),
		),
		s.handleListSymptoms,
	)

	s.mcpServer.AddTool(
		mcp.NewTool(
			"infer_diagnosis",
			mcp.WithDescription("Infer the most likely condition for a set of symptoms"),
			mcp.WithArray("symptoms",
				mcp.Required(),
				mcp.Description("Symptom names, see list_symptoms"),
				mcp.Items(map[string]any{"type": "string"}),
			),
		),
		s.handleInferDiagnosis,
	)

	s.mcpServer.AddTool(
		mcp.NewTool(
			"rank_providers",
			mcp.WithDescription("List providers offering a specialty, nearest first"),
			mcp.WithString("specialty", mcp.Required(), mcp.Description("Specialty name, e.g. Cardiology")),
			mcp.WithNumber("lat", mcp.Description("Latitude of the patient")),
			mcp.WithNumber("lng", mcp.Description("Longitude of the patient")),
			mcp.WithString("location", mcp.Description("Area name used when coordinates are absent")),
		),
		s.handleRankProviders,
	)

	s.mcpServer.AddTool(
		mcp.NewTool(
			"resolve_location",
			mcp.WithDescription("Resolve a Vellore area name or address to coordinates"),
			mcp.WithString("query", mcp.Required(), mcp.Description("Free text such as 'near Katpadi station'")),
			mcp.WithBoolean("quick_select", mcp.Description("Treat query as a one-tap area name")),
		),
		s.handleResolveLocation,
	)
}

func (s *Server) handleListSymptoms(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return jsonResult(entities.AllSymptoms())
}

func (s *Server) handleInferDiagnosis(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := request.GetArguments()

	raw, ok := args["symptoms"].([]any)
	if !ok || len(raw) == 0 {
		return mcp.NewToolResultError("Missing required parameter: symptoms"), nil
	}
	names := make([]string, 0, len(raw))
	for _, r := range raw {
		name, ok := r.(string)
		if !ok {
			return mcp.NewToolResultError("symptoms must be strings"), nil
		}
		names = append(names, name)
	}

	selection, err := entities.ParseSymptoms(names)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	ranked, err := s.inference.Rank(ctx, selection)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Failed to infer diagnosis: %v", err)), nil
	}

	best := ranked[0]
	return jsonResult(map[string]any{
		"diagnosis": entities.Diagnosis{
			Condition:       best.Condition,
			MatchedSymptoms: best.MatchedSymptoms,
			Score:           best.Score,
		},
		"alternatives": ranked[1:min(len(ranked), topConditions+1)],
	})
}

func (s *Server) handleRankProviders(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := request.GetArguments()

	raw, _ := args["specialty"].(string)
	if raw == "" {
		return mcp.NewToolResultError("Missing required parameter: specialty"), nil
	}
	specialty, err := entities.ParseSpecialty(raw)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	in := services.LocationInput{}
	if lat, ok := args["lat"].(float64); ok {
		in.Latitude = &lat
	}
	if lng, ok := args["lng"].(float64); ok {
		in.Longitude = &lng
	}
	in.Query, _ = args["location"].(string)

	var origin *entities.Location
	if in.Latitude != nil || in.Longitude != nil || in.Query != "" {
		origin, err = s.locations.Resolve(ctx, in)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
	}

	ranked, err := s.ranking.RankProviders(ctx, specialty, origin)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Failed to rank providers: %v", err)), nil
	}

	return jsonResult(map[string]any{
		"origin":    origin,
		"providers": ranked,
	})
}

func (s *Server) handleResolveLocation(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := request.GetArguments()

	query, _ := args["query"].(string)
	quick, _ := args["quick_select"].(bool)

	loc, err := s.locations.Resolve(ctx, services.LocationInput{Query: query, QuickSelect: quick})
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Failed to resolve location: %v", err)), nil
	}
	return jsonResult(loc)
}

func jsonResult(v any) (*mcp.CallToolResult, error) {
	jsonBytes, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	return mcp.NewToolResultText(string(jsonBytes)), nil
}

func MountHTTPHandlers(mux *http.ServeMux, mcpServer *server.MCPServer) {
	sseServer := server.NewSSEServer(mcpServer, server.WithStaticBasePath("/mcp"))

	mux.HandleFunc("/mcp", func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodPost {
			sseServer.ServeHTTP(w, r)
			return
		}
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
	})

	mux.HandleFunc("/mcp/sse", sseServer.ServeHTTP)
	mux.HandleFunc("/mcp/message", sseServer.ServeHTTP)
}
