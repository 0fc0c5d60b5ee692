package search

import (
	"math"
	"reflect"
	"testing"
)

func TestNormalize(t *testing.T) {
	got := Normalize("Need ML/AI folks, Node.js & C++!")
	want := []string{"need", "ml", "ai", "folks", "node.js", "c++"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("Normalize mismatch: got %v want %v", got, want)
	}
	if got := Normalize("K8s"); !reflect.DeepEqual(got, []string{"k", "s"}) {
		t.Fatalf("digits must split tokens, got %v", got)
	}
	if got := Normalize("123 456 !!"); len(got) != 0 {
		t.Fatalf("expected no tokens, got %v", got)
	}
}

func TestExpandAliases(t *testing.T) {
	cases := []struct {
		in   []string
		want []string
	}{
		// canonical word present
		{[]string{"kubernetes"}, []string{"kubernetes", "kubernetes", "k8s", "k8s"}},
		// key as substring of the concatenation, including unintended hits
		{[]string{"html"}, []string{"html", "machine", "learning", "ml", "ml"}},
		// key spanning two tokens
		{[]string{"react", "native"}, []string{"react", "native", "react", "native", "react-native", "reactnative"}},
		{[]string{"golang"}, []string{"golang"}},
	}
	for _, c := range cases {
		got := ExpandAliases(c.in)
		if !reflect.DeepEqual(got, c.want) {
			t.Fatalf("ExpandAliases(%v) = %v want %v", c.in, got, c.want)
		}
	}
}

func TestExpandAliases_DoesNotMutateInput(t *testing.T) {
	in := []string{"ml"}
	_ = ExpandAliases(in)
	if len(in) != 1 || in[0] != "ml" {
		t.Fatalf("input mutated: %v", in)
	}
}

func TestBagOfWords(t *testing.T) {
	tv := BagOfWords("Kubernetes kubernetes")
	if tv["kubernetes"] != 3 || tv["k8s"] != 2 {
		t.Fatalf("unexpected term vector: %v", tv)
	}
}

func TestCosine(t *testing.T) {
	a := BagOfWords("python django aws docker")
	b := BagOfWords("python developer with aws")
	ab := Cosine(a, b)
	ba := Cosine(b, a)
	if math.Abs(ab-ba) > 1e-12 {
		t.Fatalf("cosine not symmetric: %v vs %v", ab, ba)
	}
	if ab <= 0 || ab > 1 {
		t.Fatalf("cosine out of range: %v", ab)
	}
	if got := Cosine(a, a); math.Abs(got-1) > 1e-9 {
		t.Fatalf("self cosine should be 1, got %v", got)
	}
	if got := Cosine(a, TermVector{}); got != 0 {
		t.Fatalf("cosine with empty vector should be 0, got %v", got)
	}
	if got := Cosine(TermVector{"x": 1}, TermVector{"y": 2}); got != 0 {
		t.Fatalf("disjoint cosine should be 0, got %v", got)
	}
}
