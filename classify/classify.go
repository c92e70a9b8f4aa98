// Package classify assigns a category to every flow node based on its
// dotted class path. Classification is total: any string maps to some
// category, with custom as the final fallback.
package classify

import "strings"

// Category is the behavioral family of a flow node. The set is closed;
// the emitter keys its body templates off it.
type Category string

const (
	LLM                 Category = "llm"
	ChatModel           Category = "chat_model"
	Chain               Category = "chain"
	Agent               Category = "agent"
	Tool                Category = "tool"
	Memory              Category = "memory"
	Prompt              Category = "prompt"
	Retriever           Category = "retriever"
	VectorStore         Category = "vectorstore"
	Embedding           Category = "embedding"
	Document            Category = "document"
	TextSplitter        Category = "text_splitter"
	Utility             Category = "utility"
	Custom              Category = "custom"
	OutputParser        Category = "output_parser"
	Router              Category = "router"
	DocumentTransformer Category = "document_transformer"
)

// Classify resolves a class path to its category. Resolution order:
// exact table lookup, then the longest substring relation between the
// path and a table key (in either direction), then keyword rules over
// the final path segment, then Custom.
func Classify(classPath string) Category {
	if classPath == "" {
		return Custom
	}
	if cat, ok := exactCategories[classPath]; ok {
		return cat
	}

	// Longest overlapping table key wins, so
	// "langchain.chains.router.base.RouterChain.Custom" resolves via
	// the router entry rather than the shorter chains prefix.
	var best string
	var bestCat Category
	for _, e := range exactOrder {
		if len(e.path) <= len(best) {
			continue
		}
		if strings.Contains(classPath, e.path) || strings.Contains(e.path, classPath) {
			best = e.path
			bestCat = e.category
		}
	}
	if best != "" {
		return bestCat
	}

	segment := classPath
	if i := strings.LastIndex(classPath, "."); i >= 0 {
		segment = classPath[i+1:]
	}
	segment = strings.ToLower(segment)
	for _, rule := range keywordRules {
		for _, kw := range rule.keywords {
			if strings.Contains(segment, kw) {
				return rule.category
			}
		}
	}

	return Custom
}

// All lists every category, in the order the emitter documents them.
func All() []Category {
	return []Category{
		LLM, ChatModel, Chain, Agent, Tool, Memory, Prompt, Retriever,
		VectorStore, Embedding, Document, TextSplitter, Utility, Custom,
		OutputParser, Router, DocumentTransformer,
	}
}
