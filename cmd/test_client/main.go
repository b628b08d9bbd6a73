package main

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/alecthomas/kong"
	mcp "github.com/modelcontextprotocol/go-sdk/mcp"
)

var cli struct {
	Endpoint string `default:"http://localhost:8080/mcp/stream" help:"Streamable HTTP endpoint."`
	Country  string `default:"in" help:"Country code used by every test."`
}

func main() {
	kong.Parse(&cli, kong.Name("test_client"), kong.Description("Smoke test every MCP tool."))
	endpoint, country := &cli.Endpoint, &cli.Country

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	client := mcp.NewClient(&mcp.Implementation{
		Name:    "adzuna-jobs-mcp-test-client",
		Version: "0.1.0",
	}, nil)

	session, err := client.Connect(ctx, &mcp.StreamableClientTransport{
		Endpoint: *endpoint,
	}, nil)
	if err != nil {
		log.Fatalf("Failed to connect: %v", err)
	}
	defer func() { _ = session.Close() }()

	log.Printf("Connected to server (session ID: %s)\n", session.ID())

	testListTools(ctx, session)

	// Run independent tests
	callTool(ctx, session, "get_job_categories", map[string]any{
		"country": *country,
	})
	callTool(ctx, session, "search_jobs", map[string]any{
		"keywords":         "software engineer",
		"location":         "Bangalore",
		"country":          *country,
		"results_per_page": 5,
	})
	callTool(ctx, session, "search_internships", map[string]any{
		"keywords":         "data science",
		"country":          *country,
		"results_per_page": 5,
	})
	callTool(ctx, session, "search_company_jobs", map[string]any{
		"company_name":     "Infosys",
		"job_description":  "developer",
		"country":          *country,
		"results_per_page": 5,
	})
	callTool(ctx, session, "search_remote_jobs", map[string]any{
		"keywords":         "python",
		"country":          *country,
		"results_per_page": 5,
	})

	// Expected to fail with invalid_parameter
	callTool(ctx, session, "search_jobs", map[string]any{
		"keywords": "golang",
		"country":  "india",
	})

	fmt.Println("\nAll tests completed")
}

func testListTools(ctx context.Context, session *mcp.ClientSession) {
	fmt.Println("\nTEST: list tools")

	res, err := session.ListTools(ctx, nil)
	if err != nil {
		log.Printf("list tools failed: %v", err)
		return
	}
	for _, tool := range res.Tools {
		fmt.Printf("  %s: %s\n", tool.Name, tool.Description)
	}
}

func callTool(ctx context.Context, session *mcp.ClientSession, name string, args map[string]any) {
	fmt.Printf("\nTEST: %s\n", name)

	result, err := session.CallTool(ctx, &mcp.CallToolParams{
		Name:      name,
		Arguments: args,
	})
	if err != nil {
		log.Printf("%s failed: %v", name, err)
		return
	}

	printResult(result)
	if result.IsError {
		fmt.Printf("%s returned a tool error\n", name)
		return
	}
	fmt.Printf("%s passed\n", name)
}

func printResult(res *mcp.CallToolResult) {
	for _, c := range res.Content {
		if txt, ok := c.(*mcp.TextContent); ok {
			fmt.Println(txt.Text)
		}
	}
}
