package inline

import (
	"encoding/json"
	"io"

	"github.com/streambox/streambox/source"
)

type Episode struct {
	*source.Episode
	Streams []*source.Stream `json:"streams,omitempty"`
	// Selected is the remembered quality if offered, else the default stream.
	Selected *source.Stream `json:"selected,omitempty"`
	Error    string         `json:"error,omitempty"`
}

type Entry struct {
	Item *source.Item `json:"item"`
	// ContentID is the identifier that episodes were listed with.
	ContentID string     `json:"content_id,omitempty"`
	Episodes  []*Episode `json:"episodes,omitempty"`
}

type Output struct {
	Source string   `json:"source"`
	Mode   string   `json:"mode"`
	Query  string   `json:"query,omitempty"`
	Page   int      `json:"page"`
	Result []*Entry `json:"result"`
}

func writeJson(out io.Writer, output *Output) error {
	if output.Result == nil {
		output.Result = []*Entry{}
	}
	encoder := json.NewEncoder(out)
	encoder.SetIndent("", "  ")
	return encoder.Encode(output)
}
