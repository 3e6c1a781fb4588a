package main

import (
	"context"
	"flag"
	"fmt"
	"log"

	mcp "github.com/modelcontextprotocol/go-sdk/mcp"
)

func main() {
	endpoint := flag.String("endpoint", "http://localhost:8080/mcp/stream", "MCP streamable HTTP endpoint")
	search := flag.String("search", "engineer", "search text for job_search")
	jobID := flag.String("job", "", "job id for job_get (skipped when empty)")
	flag.Parse()

	ctx := context.Background()

	client := mcp.NewClient(&mcp.Implementation{
		Name:    "jobboard-test-client",
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
	testJobSearch(ctx, session, *search)
	if *jobID != "" {
		testJobGet(ctx, session, *jobID)
	}

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
		fmt.Printf("- %s: %s\n", tool.Name, tool.Description)
	}
}

func testJobSearch(ctx context.Context, session *mcp.ClientSession, search string) {
	fmt.Println("\nTEST: job_search")

	result, err := session.CallTool(ctx, &mcp.CallToolParams{
		Name: "job_search",
		Arguments: map[string]any{
			"search":   search,
			"job_type": "all",
		},
	})
	if err != nil {
		log.Printf("job_search failed: %v", err)
		return
	}

	printResult(result)
	fmt.Println("job_search passed")
}

func testJobGet(ctx context.Context, session *mcp.ClientSession, id string) {
	fmt.Println("\nTEST: job_get")

	result, err := session.CallTool(ctx, &mcp.CallToolParams{
		Name:      "job_get",
		Arguments: map[string]any{"id": id},
	})
	if err != nil {
		log.Printf("job_get failed: %v", err)
		return
	}

	printResult(result)
	fmt.Println("job_get passed")
}

func printResult(res *mcp.CallToolResult) {
	if res.IsError {
		fmt.Println("tool reported an error:")
	}
	for _, c := range res.Content {
		if txt, ok := c.(*mcp.TextContent); ok {
			fmt.Println(txt.Text)
		}
	}
}
