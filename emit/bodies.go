package emit

import (
	"fmt"

	"github.com/petal-labs/flowport/classify"
	"github.com/petal-labs/flowport/flow"
)

// NodeBodyGenerator produces the body of a generated node function.
// Lines are relative to the function body; the emitter indents them.
type NodeBodyGenerator interface {
	Body(name string, node flow.NodeSpec, cat classify.Category) []string
}

// CategoryBodies is the production body generator: one template per
// node category, instanced with the node's inputs.
type CategoryBodies struct{}

func (CategoryBodies) Body(name string, node flow.NodeSpec, cat classify.Category) []string {
	switch cat {
	case classify.LLM:
		return llmBody(node)
	case classify.ChatModel:
		return chatModelBody(node)
	case classify.Chain:
		return chainBody(node)
	case classify.Agent:
		return agentBody(node)
	case classify.Tool:
		return toolBody(node)
	case classify.Memory:
		return memoryBody(node)
	case classify.Prompt:
		return promptBody(node)
	case classify.Retriever:
		return retrieverBody(node)
	case classify.VectorStore:
		return vectorStoreBody(node)
	case classify.Embedding:
		return embeddingBody(node)
	case classify.Document:
		return documentBody(node)
	case classify.TextSplitter:
		return textSplitterBody(node)
	case classify.Utility:
		return utilityBody(node)
	case classify.OutputParser:
		return outputParserBody(node)
	case classify.Router:
		return routerBody(node)
	case classify.DocumentTransformer:
		return documentTransformerBody(node)
	default:
		return customBody(node)
	}
}

// classTail returns the final segment of the node's class path, used
// in template comments.
func classTail(node flow.NodeSpec) string {
	path := node.ClassPath
	for i := len(path) - 1; i >= 0; i-- {
		if path[i] == '.' {
			return path[i+1:]
		}
	}
	return path
}

func inputString(node flow.NodeSpec, key, fallback string) string {
	if v, ok := node.Inputs[key]; ok {
		if s, ok := v.(string); ok {
			return s
		}
	}
	return fallback
}

func inputNumber(node flow.NodeSpec, key string, fallback float64) float64 {
	if v, ok := node.Inputs[key]; ok {
		switch n := v.(type) {
		case float64:
			return n
		case int:
			return float64(n)
		}
	}
	return fallback
}

func llmBody(node flow.NodeSpec) []string {
	model := inputString(node, "model_name", "")
	temp := inputNumber(node, "temperature", 0.7)
	return []string{
		`"""Process the state using an LLM."""`,
		fmt.Sprintf("# Model: %s, Temperature: %g", model, temp),
		`if "prompt" in state:`,
		`    state["llm_response"] = f"Response to: {state['prompt']}"`,
		`elif "input" in state:`,
		`    state["llm_response"] = f"Response to: {state['input']}"`,
		`else:`,
		`    state["llm_response"] = "No input provided"`,
		`return state`,
	}
}

func chatModelBody(node flow.NodeSpec) []string {
	model := inputString(node, "model_name", "")
	temp := inputNumber(node, "temperature", 0.7)
	return []string{
		`"""Process the state using a chat model."""`,
		fmt.Sprintf("# Model: %s, Temperature: %g", model, temp),
		`if "messages" in state and isinstance(state["messages"], list):`,
		`    state["chat_response"] = f"Response to {len(state['messages'])} messages"`,
		`elif "input" in state:`,
		`    state["chat_response"] = f"Response to: {state['input']}"`,
		`else:`,
		`    state["chat_response"] = "No input provided"`,
		`return state`,
	}
}

func chainBody(node flow.NodeSpec) []string {
	return []string{
		`"""Process the state through a chain."""`,
		fmt.Sprintf("# Chain: %s", classTail(node)),
		`if "input" in state:`,
		`    state["chain_result"] = f"Chain processed: {state['input']}"`,
		`return state`,
	}
}

func agentBody(node flow.NodeSpec) []string {
	return []string{
		`"""Process the state using an agent."""`,
		fmt.Sprintf("# Agent: %s", classTail(node)),
		`if "input" in state:`,
		`    state["agent_result"] = f"Agent processed: {state['input']}"`,
		`    state["intermediate_steps"] = ["Step 1: Thinking", "Step 2: Acting"]`,
		`return state`,
	}
}

func toolBody(node flow.NodeSpec) []string {
	return []string{
		`"""Process the state using a tool."""`,
		fmt.Sprintf("# Tool: %s", classTail(node)),
		`if "input" in state:`,
		`    state["tool_result"] = f"Tool executed on: {state['input']}"`,
		`return state`,
	}
}

func memoryBody(node flow.NodeSpec) []string {
	return []string{
		`"""Update conversation memory."""`,
		fmt.Sprintf("# Memory: %s", classTail(node)),
		`if "history" not in state:`,
		`    state["history"] = []`,
		`if "input" in state and "llm_response" in state:`,
		`    state["history"].append((state["input"], state["llm_response"]))`,
		`return state`,
	}
}

func promptBody(node flow.NodeSpec) []string {
	template := inputString(node, "template", "")
	return []string{
		`"""Format the prompt template with state values."""`,
		fmt.Sprintf(`template = """%s"""`, template),
		`formatted = template`,
		`import re`,
		`for var in re.findall(r'{([^{}]+)}', template):`,
		`    if var.strip() in state:`,
		`        formatted = formatted.replace('{' + var + '}', str(state[var.strip()]))`,
		`state["prompt"] = formatted`,
		`return state`,
	}
}

func retrieverBody(node flow.NodeSpec) []string {
	return []string{
		`"""Retrieve documents for the current input."""`,
		fmt.Sprintf("# Retriever: %s", classTail(node)),
		`if "input" in state:`,
		`    state["documents"] = [`,
		`        {"content": f"Document 1 relevant to {state['input']}", "metadata": {}},`,
		`        {"content": f"Document 2 relevant to {state['input']}", "metadata": {}},`,
		`    ]`,
		`return state`,
	}
}

func vectorStoreBody(node flow.NodeSpec) []string {
	return []string{
		`"""Search the vector store."""`,
		fmt.Sprintf("# VectorStore: %s", classTail(node)),
		`if "input" in state:`,
		`    state["search_results"] = [`,
		`        {"content": f"Result 1 for {state['input']}", "metadata": {}},`,
		`        {"content": f"Result 2 for {state['input']}", "metadata": {}},`,
		`    ]`,
		`return state`,
	}
}

func embeddingBody(node flow.NodeSpec) []string {
	return []string{
		`"""Generate embeddings for the input text."""`,
		fmt.Sprintf("# Embedding: %s", classTail(node)),
		`if "input" in state:`,
		`    state["embeddings"] = [[0.1, 0.2, 0.3]]`,
		`return state`,
	}
}

func documentBody(node flow.NodeSpec) []string {
	return []string{
		`"""Load document content."""`,
		fmt.Sprintf("# Loader: %s", classTail(node)),
		`if "file_path" in state:`,
		`    state["document_content"] = f"Content loaded from {state['file_path']}"`,
		`return state`,
	}
}

func textSplitterBody(node flow.NodeSpec) []string {
	chunkSize := inputNumber(node, "chunk_size", 1000)
	return []string{
		`"""Split the input text into chunks."""`,
		fmt.Sprintf("# Splitter: %s, chunk size: %g", classTail(node), chunkSize),
		`if "input" in state and isinstance(state["input"], str):`,
		`    paragraphs = state["input"].split("\n\n")`,
		`    state["chunks"] = [p for p in paragraphs if p.strip()]`,
		`return state`,
	}
}

func utilityBody(node flow.NodeSpec) []string {
	return []string{
		`"""Apply a utility transformation."""`,
		fmt.Sprintf("# Utility: %s", classTail(node)),
		`if "input" in state:`,
		`    state["processed_input"] = state["input"].upper()`,
		`return state`,
	}
}

func outputParserBody(node flow.NodeSpec) []string {
	return []string{
		`"""Parse structured output from the input."""`,
		fmt.Sprintf("# Parser: %s", classTail(node)),
		`if "input" in state:`,
		`    state["parsed_output"] = {"result": state["input"], "status": "success"}`,
		`return state`,
	}
}

func routerBody(node flow.NodeSpec) []string {
	return []string{
		`"""Record the routing destination."""`,
		fmt.Sprintf("# Router: %s", classTail(node)),
		`state["route"] = state.get("destination", "default")`,
		`return state`,
	}
}

func documentTransformerBody(node flow.NodeSpec) []string {
	return []string{
		`"""Transform the retrieved documents."""`,
		fmt.Sprintf("# Transformer: %s", classTail(node)),
		`documents = state.get("documents", [])`,
		`state["transformed_documents"] = documents`,
		`return state`,
	}
}

func customBody(node flow.NodeSpec) []string {
	return []string{
		`"""Custom node processing."""`,
		`if "input" in state:`,
		`    state["output"] = f"Processed: {state['input']}"`,
		`return state`,
	}
}
