package state

import "github.com/petal-labs/flowport/classify"

type defaultField struct {
	name   string
	pyType string
}

// categoryFields lists the fields a node of each category is expected
// to read or write. Order within a category is the order fields enter
// the schema.
var categoryFields = map[classify.Category][]defaultField{
	classify.LLM: {
		{"input", TypeStr},
		{"llm_response", TypeStr},
	},
	classify.ChatModel: {
		{"input", TypeStr},
		{"messages", TypeList},
		{"chat_response", TypeStr},
	},
	classify.Chain: {
		{"input", TypeStr},
		{"chain_result", TypeStr},
	},
	classify.Agent: {
		{"input", TypeStr},
		{"agent_result", TypeStr},
		{"intermediate_steps", TypeList},
		{"tools", TypeList},
	},
	classify.Tool: {
		{"input", TypeStr},
		{"tool_result", TypeStr},
	},
	classify.Memory: {
		{"input", TypeStr},
		{"history", TypeList},
		{"memory_result", TypeStr},
		{"chat_history", TypeList},
	},
	classify.Prompt: {
		{"input", TypeStr},
		{"prompt", TypeStr},
		{"template", TypeStr},
		{"variables", TypeDict},
	},
	classify.Retriever: {
		{"input", TypeStr},
		{"query", TypeStr},
		{"documents", TypeList},
	},
	classify.VectorStore: {
		{"input", TypeStr},
		{"search_results", TypeList},
		{"documents", TypeList},
		{"query", TypeStr},
	},
	classify.Embedding: {
		{"input", TypeStr},
		{"embeddings", TypeList},
		{"texts", TypeList},
	},
	classify.Document: {
		{"file_path", TypeStr},
		{"document_content", TypeStr},
		{"documents", TypeList},
	},
	classify.TextSplitter: {
		{"input", TypeStr},
		{"chunks", TypeList},
		{"documents", TypeList},
	},
	classify.Utility: {
		{"input", TypeStr},
		{"processed_input", TypeStr},
		{"result", TypeStr},
	},
	classify.Custom: {
		{"input", TypeStr},
		{"output", TypeStr},
	},
	classify.OutputParser: {
		{"input", TypeStr},
		{"parsed_output", TypeDict},
		{"format_instructions", TypeStr},
	},
	classify.Router: {
		{"input", TypeStr},
		{"destination", TypeStr},
		{"route", TypeStr},
	},
	classify.DocumentTransformer: {
		{"documents", TypeList},
		{"transformed_documents", TypeList},
	},
}
