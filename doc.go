// Package snipdex is the embedded SDK for the snipdex retrieval engine.
//
// The Client indexes a small fixed corpus of snippets at construction time
// and answers top-k similarity queries in-process, without running the HTTP
// server:
//
//	client, err := snipdex.New(context.Background(),
//		snipdex.WithCorpusFile("data/snippets.json"),
//	)
//	if err != nil {
//		log.Fatal(err)
//	}
//	defer client.Close()
//
//	results, err := client.Query(context.Background(), "what is machine learning?", 3)
package snipdex
