package lsp

import (
	"testing"

	"github.com/grindlemire/iconforge/internal/extension"
	"github.com/grindlemire/iconforge/internal/suggest"
)

func TestToCompletionList(t *testing.T) {
	type tc struct {
		item       suggest.Suggestion
		wantText   string
		wantFilter string
	}

	tests := map[string]tc{
		"label only": {
			item:       suggest.Suggestion{Label: "is-red"},
			wantText:   "is-red",
			wantFilter: "is-red",
		},
		"bare color name": {
			item:       suggest.Suggestion{Label: "blue", InsertText: "is-blue"},
			wantText:   "is-blue",
			wantFilter: "is-blue",
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			list := toCompletionList(&extension.Completion{Items: []suggest.Suggestion{tt.item}})
			if len(list.Items) != 1 {
				t.Fatalf("got %d items, want 1", len(list.Items))
			}
			got := list.Items[0]
			if got.TextEdit == nil || got.TextEdit.NewText != tt.wantText {
				t.Errorf("TextEdit = %+v, want new text %q", got.TextEdit, tt.wantText)
			}
			if got.FilterText != tt.wantFilter {
				t.Errorf("FilterText = %q, want %q", got.FilterText, tt.wantFilter)
			}
			if got.Label != tt.item.Label {
				t.Errorf("Label = %q, want %q", got.Label, tt.item.Label)
			}
		})
	}
}
