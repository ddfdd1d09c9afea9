package recipe

import (
	"reflect"
	"testing"

	"recipehub/internal/domain/category"
)

func TestIngredientsRoundTrip(t *testing.T) {
	tests := []struct {
		name string
		list []string
	}{
		{name: "typical", list: []string{"4 ovos", "2 xícaras de açúcar", "1 xícara de fubá"}},
		{name: "single", list: []string{"sal a gosto"}},
		{name: "preserves_order", list: []string{"c", "a", "b"}},
		{name: "empty", list: []string{}},
	}

	for _, tt := range tests {
		tt := tt

		t.Run(tt.name, func(t *testing.T) {
			raw, err := EncodeIngredients(tt.list)

			if err != nil {
				t.Fatalf("encode: %v", err)
			}

			got, err := DecodeIngredients(raw)

			if err != nil {
				t.Fatalf("decode: %v", err)
			}

			if !reflect.DeepEqual(got, tt.list) {
				t.Fatalf("round trip mismatch: got %v want %v", got, tt.list)
			}
		})
	}
}

func TestDecodeIngredients_EmptyColumn(t *testing.T) {
	got, err := DecodeIngredients("")

	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if got == nil || len(got) != 0 {
		t.Fatalf("empty column should decode to an empty list, got %v", got)
	}
}

func TestUpdateRequestApply_PartialMerge(t *testing.T) {
	tempo := 30
	rec := Recipe{
		ID:           7,
		Nome:         "Bolo de fubá",
		TempoPreparo: &tempo,
		ModoPreparo:  "Misture tudo e asse.",
		Ingredientes: []string{"fubá", "ovos"},
		Category:     &category.Category{ID: 1, Nome: "Bolos e Tortas"},
		OwnerID:      3,
	}

	novoNome := "Bolo de fubá cremoso"
	porcoes := 10

	req := UpdateRecipeRequest{
		Nome:    &novoNome,
		Porcoes: &porcoes,
	}

	req.Apply(&rec)

	if rec.Nome != novoNome {
		t.Fatalf("nome not applied: %q", rec.Nome)
	}

	if rec.Porcoes == nil || *rec.Porcoes != 10 {
		t.Fatalf("porcoes not applied: %v", rec.Porcoes)
	}

	// unspecified fields keep their prior values
	if rec.TempoPreparo == nil || *rec.TempoPreparo != 30 {
		t.Fatalf("tempo_preparo should be untouched: %v", rec.TempoPreparo)
	}

	if rec.ModoPreparo != "Misture tudo e asse." {
		t.Fatalf("modo_preparo should be untouched: %q", rec.ModoPreparo)
	}

	if len(rec.Ingredientes) != 2 {
		t.Fatalf("ingredientes should be untouched: %v", rec.Ingredientes)
	}
}

func TestUpdateRequestApply_ReplacesIngredientList(t *testing.T) {
	rec := Recipe{Ingredientes: []string{"a", "b", "c"}}

	novaLista := []string{"x"}
	req := UpdateRecipeRequest{Ingredientes: &novaLista}

	req.Apply(&rec)

	if !reflect.DeepEqual(rec.Ingredientes, []string{"x"}) {
		t.Fatalf("ingredient list should be replaced wholesale, got %v", rec.Ingredientes)
	}
}
