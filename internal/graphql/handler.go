package graphql

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/graphql-go/graphql"
	"go.uber.org/zap"
)

type requestBody struct {
	Query         string                 `json:"query"`
	OperationName string                 `json:"operationName"`
	Variables     map[string]interface{} `json:"variables"`
}

// HandleQuery serves queries and mutations over POST. Resolver failures
// surface inside the GraphQL errors array, so the HTTP status stays 200
// for any well-formed request.
func (s *Schema) HandleQuery(w http.ResponseWriter, r *http.Request) {
	var body requestBody
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		http.Error(w, `{"errors":[{"message":"invalid request body"}]}`, http.StatusBadRequest)
		return
	}

	if body.OperationName != "IntrospectionQuery" {
		s.log.Debug("GraphQL request",
			zap.String("operation", body.OperationName),
			zap.Int("query_length", len(body.Query)))
	}

	result := graphql.Do(graphql.Params{
		Schema:         s.schema,
		RequestString:  body.Query,
		OperationName:  body.OperationName,
		VariableValues: body.Variables,
		Context:        r.Context(),
	})

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(result); err != nil {
		s.log.Error("Failed to write response", zap.Error(err))
	}
}

// HandleSubscribe serves subscription operations as a Server-Sent Events
// stream (GraphQL-over-SSE). The operation arrives in query parameters;
// each execution result is emitted as a "next" event and the stream ends
// with "complete" when the client disconnects.
func (s *Schema) HandleSubscribe(w http.ResponseWriter, r *http.Request) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "streaming unsupported", http.StatusInternalServerError)
		return
	}

	query := r.URL.Query().Get("query")
	if query == "" {
		http.Error(w, `{"errors":[{"message":"query parameter is required"}]}`, http.StatusBadRequest)
		return
	}

	var variables map[string]interface{}
	if raw := r.URL.Query().Get("variables"); raw != "" {
		if err := json.Unmarshal([]byte(raw), &variables); err != nil {
			http.Error(w, `{"errors":[{"message":"invalid variables parameter"}]}`, http.StatusBadRequest)
			return
		}
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")

	results := graphql.Subscribe(graphql.Params{
		Schema:         s.schema,
		RequestString:  query,
		OperationName:  r.URL.Query().Get("operationName"),
		VariableValues: variables,
		Context:        r.Context(),
	})

	for result := range results {
		payload, err := json.Marshal(result)
		if err != nil {
			s.log.Error("Failed to marshal subscription result", zap.Error(err))
			continue
		}
		fmt.Fprintf(w, "event: next\ndata: %s\n\n", payload)
		flusher.Flush()
	}

	fmt.Fprint(w, "event: complete\ndata: {}\n\n")
	flusher.Flush()
}
