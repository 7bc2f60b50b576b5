// Package sdk is a typed Go client for the Genesis Data Manager HTTP API.
//
//	client := sdk.New("http://localhost:8000", sdk.WithAPIKey("secret"))
//	_, err := client.Setup(ctx, sdk.SetupRequest{
//	    CloudflareURL:  "https://tunnel.example.com",
//	    APIKey:         "milvus-key",
//	    CollectionName: "genesis_memory",
//	})
//	result, err := client.UploadFile(ctx, "notes.md")
//	if result.Rejected() {
//	    fmt.Println(result.DuplicateMessage)
//	}
package sdk
