package scene

import (
	"fmt"

	"xytectl/internal/domain"
	"xytectl/internal/frame"
	"xytectl/internal/safeview"
)

var copilotSuggestions = []string{
	"Which devices went offline in the last day?",
	"Summarize open incidents by severity.",
	"Which spaces have the most tickets?",
}

// FromCopilotState renders the prompt pane and the response pane. Without a
// transcript the response pane shows the organization context the assistant
// would be given.
func FromCopilotState(st domain.CopilotState, opts Options) Scene {
	prompt := []string{}
	if st.Prompt != "" {
		prompt = append(prompt, "> "+st.Prompt)
	} else {
		prompt = append(prompt, "Try asking:")
		for _, s := range copilotSuggestions {
			prompt = append(prompt, "  "+s)
		}
	}
	if st.Organization.Name != "" {
		prompt = append(prompt, "", fmt.Sprintf("Context: %s", st.Organization.Name))
	}

	if len(st.Transcript) > 0 {
		return Scene{Panels: []frame.Panel{
			frame.TextPanel("prompt", "Prompt", prompt...),
			frame.TextPanel("response", "Response", st.Transcript...),
		}}
	}

	p := safeview.PreviewLines(st.Context, opts.Render)
	return Scene{
		Panels: []frame.Panel{
			frame.TextPanel("prompt", "Prompt", prompt...),
			frame.TextPanel("response", "Context", p.Lines...),
		},
		Truncated: p.Truncated,
	}
}
