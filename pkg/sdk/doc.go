// Package mediasense is a Go client for the mediasense HTTP API:
// image and text embeddings, similarity ranking, media search,
// the instruction library and prompt-driven completions.
//
//	client, _ := mediasense.New("http://localhost:8000", mediasense.WithAPIKey(key))
//	emb, _ := client.EmbedText(ctx, "a dog on a beach")
//	hits, _ := client.Search(ctx, emb.Embeddings, 5)
//
//	out, _ := client.Complete(ctx, mediasense.CompletionRequest{
//	    UserPrompt:    "Review this handler",
//	    InstructionID: id,
//	})
//
// Errors returned by the API carry an *APIError; match categories with
// errors.Is against ErrNotFound, ErrValidation and the other sentinels.
package mediasense
