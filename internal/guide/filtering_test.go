package guide

import (
	"reflect"
	"testing"

	"github.com/dgallion1/guidegen/internal/graph"
)

// filterGraph builds a small two-question guide:
//
//	start -> q2 (Yes) -> r1 / r2
//	start -> r3 (No)
func filterGraph(t *testing.T) *Tree {
	t.Helper()
	g := graph.New()
	g.SetLabel("start", "Has a stock?")
	g.SetLabel("q2", "Rifled bore?")
	g.SetLabel("r1", "Rifle")
	g.SetLabel("r2", "Shotgun")
	g.SetLabel("r3", "Pistol")
	g.AddEdge(&graph.Edge{Src: "start", Dst: "q2", Label: "Yes", HasLabel: true})
	g.AddEdge(&graph.Edge{Src: "start", Dst: "r3", Label: "No", HasLabel: true})
	g.AddEdge(&graph.Edge{Src: "q2", Dst: "r1", Label: "Yes", HasLabel: true})
	g.AddEdge(&graph.Edge{Src: "q2", Dst: "r2", Label: "No", HasLabel: true})

	tree, err := Build(g, "start", BuildOptions{})
	if err != nil {
		t.Fatal(err)
	}
	return tree
}

func TestBuildFilterModel(t *testing.T) {
	m := BuildFilterModel(filterGraph(t))

	if want := []string{"start", "q2"}; !reflect.DeepEqual(m.Questions, want) {
		t.Errorf("questions: got %v, want %v", m.Questions, want)
	}
	if want := []string{"r1", "r2", "r3"}; !reflect.DeepEqual(m.InitialCandidates, want) {
		t.Errorf("initial candidates: got %v, want %v", m.InitialCandidates, want)
	}

	tests := []struct {
		key  string
		want []string
	}{
		{OptionKey("start", "q2"), []string{"r1", "r2"}},
		{OptionKey("start", "r3"), []string{"r3"}},
		{OptionKey("q2", "r1"), []string{"r1"}},
		{OptionKey("q2", "r2"), []string{"r2"}},
	}
	for _, tt := range tests {
		if got := m.OptionLeaves[tt.key]; !reflect.DeepEqual(got, tt.want) {
			t.Errorf("%s: got %v, want %v", tt.key, got, tt.want)
		}
	}
}

func TestBuildFilterModel_SkipsSyntheticRoot(t *testing.T) {
	g := graph.New()
	g.SetLabel("P", "Handguns")
	g.SetLabel("Q", "Long guns")
	g.AddEdge(&graph.Edge{Src: "P", Dst: "p1", Label: "go", HasLabel: true})
	g.SetLabel("p1", "Pistol")
	g.AddEdge(&graph.Edge{Src: "Q", Dst: "q1", Label: "go", HasLabel: true})
	g.SetLabel("q1", "Rifle")

	root, synthetic, err := g.Resolve("Where do you want to start?")
	if err != nil || !synthetic {
		t.Fatalf("resolve: root=%q synthetic=%v err=%v", root, synthetic, err)
	}
	tree, err := Build(g, root, BuildOptions{})
	if err != nil {
		t.Fatal(err)
	}

	m := BuildFilterModel(tree)
	for _, q := range m.Questions {
		if q == root {
			t.Error("synthetic root must not appear in the question menu")
		}
	}
	if want := []string{"p1", "q1"}; !reflect.DeepEqual(m.InitialCandidates, want) {
		t.Errorf("initial candidates: got %v, want %v", m.InitialCandidates, want)
	}
}
