package classify

// tableEntry pairs a known Langflow/LangChain class path with its
// category. Order matters for the substring pass: entries are scanned
// in declaration order and the longest match wins.
type tableEntry struct {
	path     string
	category Category
}

// keywordRule maps final-segment keywords to a category. Rules run in
// declaration order; chat_model precedes llm so "ChatOpenAI" never
// falls into the broader llm bucket.
type keywordRule struct {
	category Category
	keywords []string
}

var exactOrder = []tableEntry{
	// LLMs and chat models
	{"langflow.interface.llms.base", LLM},
	{"langflow.interface.llms.chatmodels", ChatModel},
	{"langchain.llms.openai.OpenAI", LLM},
	{"langchain.llms.openai.AzureOpenAI", LLM},
	{"langchain.chat_models.openai.ChatOpenAI", ChatModel},
	{"langchain.chat_models.openai.AzureChatOpenAI", ChatModel},
	{"langchain.llms.huggingface_hub.HuggingFaceHub", LLM},
	{"langchain.llms.huggingface_pipeline.HuggingFacePipeline", LLM},
	{"langchain.llms.huggingface_endpoint.HuggingFaceEndpoint", LLM},
	{"langchain.llms.anthropic.ChatAnthropic", ChatModel},
	{"langchain.chat_models.anthropic.ChatAnthropic", ChatModel},
	{"langchain.llms.cohere.Cohere", LLM},
	{"langchain.chat_models.cohere.ChatCohere", ChatModel},
	{"langchain.llms.ollama.Ollama", LLM},
	{"langchain.chat_models.ollama.ChatOllama", ChatModel},
	{"langchain.llms.vertexai.VertexAI", LLM},
	{"langchain.chat_models.vertexai.ChatVertexAI", ChatModel},
	{"langchain.llms.google_palm.GooglePalm", LLM},
	{"langchain.chat_models.google_palm.ChatGooglePalm", ChatModel},

	// Chains and routers
	{"langflow.interface.chains.base", Chain},
	{"langchain.chains.llm.LLMChain", Chain},
	{"langchain.chains.conversation.ConversationChain", Chain},
	{"langchain.chains.qa_with_sources.QAWithSourcesChain", Chain},
	{"langchain.chains.retrieval_qa.base.RetrievalQA", Chain},
	{"langchain.chains.router.base.RouterChain", Router},
	{"langchain.chains.router.multi_prompt.MultiPromptChain", Router},
	{"langchain.chains.router.llm_router.LLMRouterChain", Router},
	{"langchain.chains.sequential.SequentialChain", Chain},
	{"langchain.chains.transform.TransformChain", Chain},
	{"langchain.chains.summarize.SummarizeChain", Chain},
	{"langchain.chains.mapreduce.MapReduceChain", Chain},
	{"langchain.chains.combine_documents.base.BaseCombineDocumentsChain", Chain},
	{"langchain.chains.combine_documents.stuff.StuffDocumentsChain", Chain},
	{"langchain.chains.combine_documents.map_reduce.MapReduceDocumentsChain", Chain},
	{"langchain.chains.combine_documents.refine.RefineDocumentsChain", Chain},
	{"langchain.chains.graph_qa.base.GraphQAChain", Chain},
	{"langchain.chains.openai_functions.base.create_openai_fn_chain", Chain},
	{"langchain.chains.openai_functions.base.create_structured_output_chain", Chain},

	// Agents
	{"langflow.interface.agents.base", Agent},
	{"langchain.agents.agent.AgentExecutor", Agent},
	{"langchain.agents.conversational.base.ConversationalAgent", Agent},
	{"langchain.agents.mrkl.base.ZeroShotAgent", Agent},
	{"langchain.agents.react.base.ReActAgent", Agent},
	{"langchain.agents.self_ask_with_search.base.SelfAskWithSearchAgent", Agent},
	{"langchain.agents.openai_functions_agent.base.OpenAIFunctionsAgent", Agent},
	{"langchain.agents.openai_functions_multi_agent.base.OpenAIMultiFunctionsAgent", Agent},
	{"langchain.agents.structured_chat.base.StructuredChatAgent", Agent},
	{"langchain.agents.agent_toolkits.sql.base.create_sql_agent", Agent},
	{"langchain.agents.agent_toolkits.json.base.create_json_agent", Agent},
	{"langchain.agents.agent_toolkits.csv.base.create_csv_agent", Agent},
	{"langchain.agents.agent_toolkits.vectorstore.base.create_vectorstore_agent", Agent},

	// Tools
	{"langflow.interface.tools.base", Tool},
	{"langchain.tools.base.BaseTool", Tool},
	{"langchain.tools.python.tool.PythonREPLTool", Tool},
	{"langchain.tools.requests.tool.RequestsTool", Tool},
	{"langchain.tools.search.tool.SearchTool", Tool},
	{"langchain.tools.shell.tool.ShellTool", Tool},
	{"langchain.tools.bing_search.tool.BingSearchTool", Tool},
	{"langchain.tools.google_search.tool.GoogleSearchTool", Tool},
	{"langchain.tools.searx_search.tool.SearxSearchTool", Tool},
	{"langchain.tools.tavily_search.TavilySearchResults", Tool},
	{"langchain.tools.arxiv.tool.ArxivQueryRun", Tool},
	{"langchain.tools.wikipedia.tool.WikipediaQueryRun", Tool},
	{"langchain.tools.sql_database.tool.QuerySQLDataBaseTool", Tool},
	{"langchain.tools.openapi.utils.api_models.APIOperation", Tool},
	{"langchain.tools.json.tool.JsonSpec", Tool},
	{"langchain.tools.file_management.file.ReadFileTool", Tool},
	{"langchain.tools.file_management.file.WriteFileTool", Tool},
	{"langchain.tools.file_management.file.ListDirectoryTool", Tool},
	{"langchain.tools.human.tool.HumanInputRun", Tool},

	// Output parsers
	{"langchain.output_parsers.regex.RegexParser", OutputParser},
	{"langchain.output_parsers.pydantic.PydanticOutputParser", OutputParser},
	{"langchain.output_parsers.json.JsonOutputParser", OutputParser},
	{"langchain.output_parsers.structured.StructuredOutputParser", OutputParser},
	{"langchain.output_parsers.format_instructions.StructuredOutputParser", OutputParser},
	{"langchain.output_parsers.openai_functions.JsonOutputFunctionsParser", OutputParser},
	{"langchain.output_parsers.openai_functions.PydanticOutputFunctionsParser", OutputParser},

	// Memory
	{"langflow.interface.memory.base", Memory},
	{"langchain.memory.buffer.ConversationBufferMemory", Memory},
	{"langchain.memory.buffer_window.ConversationBufferWindowMemory", Memory},
	{"langchain.memory.summary.ConversationSummaryMemory", Memory},
	{"langchain.memory.summary_buffer.ConversationSummaryBufferMemory", Memory},
	{"langchain.memory.chat_message_histories.in_memory.ChatMessageHistory", Memory},
	{"langchain.memory.chat_message_histories.redis.RedisChatMessageHistory", Memory},
	{"langchain.memory.chat_message_histories.file.FileChatMessageHistory", Memory},
	{"langchain.memory.chat_message_histories.postgres.PostgresChatMessageHistory", Memory},
	{"langchain.memory.entity.entity_memory.EntityMemory", Memory},
	{"langchain.memory.token_buffer.ConversationTokenBufferMemory", Memory},
	{"langchain.memory.combined.CombinedMemory", Memory},
	{"langchain.memory.vector_store.VectorStoreRetrieverMemory", Memory},

	// Prompts
	{"langflow.interface.prompts.base", Prompt},
	{"langchain.prompts.prompt.PromptTemplate", Prompt},
	{"langchain.prompts.chat.ChatPromptTemplate", Prompt},
	{"langchain.prompts.chat.HumanMessagePromptTemplate", Prompt},
	{"langchain.prompts.chat.AIMessagePromptTemplate", Prompt},
	{"langchain.prompts.chat.SystemMessagePromptTemplate", Prompt},
	{"langchain.prompts.few_shot.FewShotPromptTemplate", Prompt},
	{"langchain.prompts.pipeline.PipelinePromptTemplate", Prompt},
	{"langchain.prompts.example_selector.base.BaseExampleSelector", Prompt},
	{"langchain.prompts.example_selector.semantic_similarity.SemanticSimilarityExampleSelector", Prompt},
	{"langchain.prompts.example_selector.length_based.LengthBasedExampleSelector", Prompt},
	{"langchain.prompts.example_selector.ngram_overlap.NGramOverlapExampleSelector", Prompt},
	{"langchain.prompts.example_selector.mmr.MaxMarginalRelevanceExampleSelector", Prompt},

	// Retrievers and document transformers
	{"langflow.interface.retrievers.base", Retriever},
	{"langchain.retrievers.contextual_compression.ContextualCompressionRetriever", Retriever},
	{"langchain.retrievers.document_compressors.base.DocumentCompressorRetriever", Retriever},
	{"langchain.retrievers.document_compressors.base.BaseDocumentCompressor", DocumentTransformer},
	{"langchain.retrievers.document_compressors.embeddings_filter.EmbeddingsFilter", DocumentTransformer},
	{"langchain.retrievers.document_compressors.embeddings_redundant.EmbeddingsRedundantFilter", DocumentTransformer},
	{"langchain.retrievers.document_compressors.llm_filter.LLMChainFilter", DocumentTransformer},
	{"langchain.retrievers.multi_query.MultiQueryRetriever", Retriever},
	{"langchain.retrievers.self_query.base.SelfQueryRetriever", Retriever},
	{"langchain.retrievers.time_weighted.TimeWeightedVectorStoreRetriever", Retriever},
	{"langchain.retrievers.web_research.WebResearchRetriever", Retriever},
	{"langchain.retrievers.ensemble.EnsembleRetriever", Retriever},
	{"langchain.retrievers.parent_document.ParentDocumentRetriever", Retriever},

	// Vector stores
	{"langflow.interface.vectorstores.base", VectorStore},
	{"langchain.vectorstores.chroma.Chroma", VectorStore},
	{"langchain.vectorstores.faiss.FAISS", VectorStore},
	{"langchain.vectorstores.pinecone.Pinecone", VectorStore},
	{"langchain.vectorstores.qdrant.Qdrant", VectorStore},
	{"langchain.vectorstores.redis.Redis", VectorStore},
	{"langchain.vectorstores.weaviate.Weaviate", VectorStore},
	{"langchain.vectorstores.milvus.Milvus", VectorStore},
	{"langchain.vectorstores.elasticsearch.ElasticsearchStore", VectorStore},
	{"langchain.vectorstores.pgvector.PGVector", VectorStore},
	{"langchain.vectorstores.supabase.SupabaseVectorStore", VectorStore},
	{"langchain.vectorstores.mongodb_atlas.MongoDBAtlasVectorSearch", VectorStore},

	// Embeddings
	{"langflow.interface.embeddings.base", Embedding},
	{"langchain.embeddings.openai.OpenAIEmbeddings", Embedding},
	{"langchain.embeddings.huggingface.HuggingFaceEmbeddings", Embedding},
	{"langchain.embeddings.cohere.CohereEmbeddings", Embedding},
	{"langchain.embeddings.vertexai.VertexAIEmbeddings", Embedding},
	{"langchain.embeddings.google_palm.GooglePalmEmbeddings", Embedding},
	{"langchain.embeddings.ollama.OllamaEmbeddings", Embedding},
	{"langchain.embeddings.bedrock.BedrockEmbeddings", Embedding},
	{"langchain.embeddings.sentence_transformer.SentenceTransformerEmbeddings", Embedding},
	{"langchain.embeddings.tensorflow_hub.TensorflowHubEmbeddings", Embedding},
	{"langchain.embeddings.fake.FakeEmbeddings", Embedding},

	// Document loaders
	{"langflow.interface.document_loaders.base", Document},
	{"langchain.document_loaders.text.TextLoader", Document},
	{"langchain.document_loaders.pdf.PyPDFLoader", Document},
	{"langchain.document_loaders.csv_loader.CSVLoader", Document},
	{"langchain.document_loaders.json_loader.JSONLoader", Document},
	{"langchain.document_loaders.excel.UnstructuredExcelLoader", Document},
	{"langchain.document_loaders.web_base.WebBaseLoader", Document},
	{"langchain.document_loaders.youtube.YoutubeLoader", Document},
	{"langchain.document_loaders.directory.DirectoryLoader", Document},
	{"langchain.document_loaders.email.UnstructuredEmailLoader", Document},
	{"langchain.document_loaders.image.UnstructuredImageLoader", Document},
	{"langchain.document_loaders.image_captions.ImageCaptionLoader", Document},
	{"langchain.document_loaders.parsers.pdf.PyPDFParser", Document},
	{"langchain.document_loaders.blob_loaders.file_system.FileSystemBlobLoader", Document},
	{"langchain.document_loaders.blob_loaders.youtube.YoutubeAudioLoader", Document},

	// Text splitters
	{"langflow.interface.text_splitters.base", TextSplitter},
	{"langchain.text_splitter.CharacterTextSplitter", TextSplitter},
	{"langchain.text_splitter.RecursiveCharacterTextSplitter", TextSplitter},
	{"langchain.text_splitter.TokenTextSplitter", TextSplitter},
	{"langchain.text_splitter.SentenceTransformersTokenTextSplitter", TextSplitter},
	{"langchain.text_splitter.MarkdownTextSplitter", TextSplitter},
	{"langchain.text_splitter.HTMLTextSplitter", TextSplitter},
	{"langchain.text_splitter.PythonCodeTextSplitter", TextSplitter},
	{"langchain.text_splitter.LatexTextSplitter", TextSplitter},

	// Utilities
	{"langflow.interface.utilities.base", Utility},
	{"langchain.utilities.python.PythonREPL", Utility},
	{"langchain.utilities.serpapi.SerpAPIWrapper", Utility},
	{"langchain.utilities.wikipedia.WikipediaAPIWrapper", Utility},
	{"langchain.utilities.tavily_search.TavilySearchAPIWrapper", Utility},
	{"langchain.utilities.google_search.GoogleSearchAPIWrapper", Utility},
	{"langchain.utilities.bing_search.BingSearchAPIWrapper", Utility},
	{"langchain.utilities.searx_search.SearxSearchWrapper", Utility},
	{"langchain.utilities.arxiv.ArxivAPIWrapper", Utility},
	{"langchain.utilities.openweathermap.OpenWeatherMapAPIWrapper", Utility},
	{"langchain.utilities.sql_database.SQLDatabase", Utility},
	{"langchain.utilities.wolfram_alpha.WolframAlphaAPIWrapper", Utility},
	{"langchain.utilities.zapier.ZapierNLAWrapper", Utility},
	{"langchain.utilities.graphql.GraphQLAPIWrapper", Utility},

	// Custom surfaces
	{"langflow.custom.base", Custom},
	{"langflow.custom.utilities.PythonFunction", Utility},
	{"langflow.custom.nodes.CustomNode", Custom},
	{"langflow.custom.nodes.InputNode", Custom},
	{"langflow.custom.nodes.OutputNode", Custom},
}

var exactCategories = func() map[string]Category {
	m := make(map[string]Category, len(exactOrder))
	for _, e := range exactOrder {
		m[e.path] = e.category
	}
	return m
}()

var keywordRules = []keywordRule{
	{ChatModel, []string{"chatmodel", "chatgpt", "chatvertexai", "chatanthropic", "chatcohere", "chatollama", "chatpalm"}},
	{LLM, []string{"llm", "openai", "anthropic", "cohere", "huggingface", "vertexai", "palm", "ollama", "bedrock"}},
	{OutputParser, []string{"parser", "outputparser", "jsonoutput", "pydanticoutput", "regexparser", "structuredoutput"}},
	{Router, []string{"router", "multiprompt", "llmrouter"}},
	{DocumentTransformer, []string{"documentcompressor", "embeddings_filter", "embeddings_redundant", "llmchainfilter"}},
	{Chain, []string{"chain"}},
	{Agent, []string{"agent", "executor"}},
	{Tool, []string{"tool"}},
	{Memory, []string{"memory", "chatmessagehistory"}},
	{Prompt, []string{"prompt", "template", "exampleselector", "messageprompt"}},
	{Retriever, []string{"retriever", "contextualcompression", "multiquery", "selfquery", "timeweighted", "webresearch", "ensemble", "parentdocument"}},
	{VectorStore, []string{"vectorstore", "faiss", "chroma", "pinecone", "qdrant", "redis", "weaviate", "milvus", "elasticsearch", "pgvector", "supabase", "mongodb"}},
	{Embedding, []string{"embedding", "embeddings", "sentencetransformer"}},
	{Document, []string{"document", "loader"}},
	{TextSplitter, []string{"splitter", "textsplitter"}},
	{Utility, []string{"python", "function", "apiwrapper", "serpapi", "wikipedia", "tavily", "googlesearch", "bingsearch", "searx", "arxiv", "openweathermap", "sqldatabase", "wolframalpha", "zapier", "graphql"}},
}
