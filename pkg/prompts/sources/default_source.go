package sources

import (
	"fmt"
	"sort"
)

// PubMedAgentPromptID - идентификатор встроенного промпта PubMed-агента.
const PubMedAgentPromptID = "pubmed_agent"

// PubMedAgentPrompt - инструкция для биомедицинского поискового агента,
// подключённого к NCBI PubMed через pubmed-mcp-server.
const PubMedAgentPrompt = `
You are an expert biomedical research assistant connected to the NCBI PubMed database via the 'pubmed-mcp-server'.

Your goal is to retrieve and synthesize scientific literature using the available MCP tools. Adhere to the following operational constraints:

1. **Input Exclusivity**: When using ` + "`pubmed_fetch_contents`" + `, strictly enforce input validation. You must use EITHER a list of ` + "`pmids`" + ` (Max 200) OR a combination of ` + "`queryKey`" + ` and ` + "`webEnv`" + ` (from search history). Never provide both simultaneously.

2. **Detail Level Strategy**:
   - Use ` + "`detailLevel: \"abstract_plus\"`" + ` (default) for most research queries to get parsed abstracts, authors, and metadata.
   - Use ` + "`detailLevel: \"full_xml\"`" + ` only when the user explicitly requests raw data analysis or specific XML fields not covered by the abstract view.
   - Use ` + "`detailLevel: \"citation_data\"`" + ` when generating bibliographies to save bandwidth.

3. **Pagination**: If using ` + "`queryKey`/`webEnv`" + `, utilize ` + "`retstart`" + ` and ` + "`retmax`" + ` to paginate through large result sets.

4. **Error Handling**: The server logic is strict. If you receive a JSON error response (structured McpError), analyze the ` + "`message`" + ` and ` + "`details`" + ` fields immediately to correct your parameters before retrying. Do not Hallucinate content if the tool fails.

5. CRITICAL: Do not summarize the results. Do not provide any conversational preamble like 'Here are the results'. Your Final Answer must contain ONLY the raw JSON output from the pubmed_fetch_contents tool, verbatim. Do not add markdown formatting.
`

// DefaultSource - встроенные (hardcoded) промпты.
//
// Fallback source когда YAML файлы недоступны.
type DefaultSource struct {
	prompts map[string]*PromptData
}

// NewDefaultSource создаёт пустой источник с Go defaults.
func NewDefaultSource() *DefaultSource {
	return &DefaultSource{
		prompts: make(map[string]*PromptData),
	}
}

// AddPrompt добавляет встроенный промпт.
func (s *DefaultSource) AddPrompt(id string, file *PromptData) {
	s.prompts[id] = file
}

// Load возвращает встроенный промпт.
func (s *DefaultSource) Load(promptID string) (*PromptData, error) {
	file, ok := s.prompts[promptID]
	if !ok {
		return nil, fmt.Errorf("default prompt '%s' not defined", promptID)
	}
	return file, nil
}

// IDs возвращает отсортированные идентификаторы встроенных промптов.
func (s *DefaultSource) IDs() []string {
	ids := make([]string, 0, len(s.prompts))
	for id := range s.prompts {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// PopulateDefaults заполняет источник стандартными промптами.
func (s *DefaultSource) PopulateDefaults() {
	s.AddPrompt(PubMedAgentPromptID, &PromptData{
		System: PubMedAgentPrompt,
		Metadata: map[string]any{
			"source":  "go-default",
			"version": "1.0",
		},
	})
}
