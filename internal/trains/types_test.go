package trains

import (
	"testing"
)

func TestRegistryAddSortsByDestination(t *testing.T) {
	r := NewRegistry()
	r.Add("Moscow", "101", "08:00")
	r.Add("Kazan", "202", "23:30")
	r.Add("Adler", "303", "12:15")

	got := r.Records()
	want := []string{"Adler", "Kazan", "Moscow"}
	if len(got) != len(want) {
		t.Fatalf("Records() len = %d, want %d", len(got), len(want))
	}
	for i, dest := range want {
		if got[i].Destination != dest {
			t.Errorf("Records()[%d].Destination = %q, want %q", i, got[i].Destination, dest)
		}
	}
}

func TestRegistryAddIsStableForEqualDestinations(t *testing.T) {
	r := NewRegistry()
	r.Add("Sochi", "1", "10:00")
	r.Add("Omsk", "2", "11:00")
	r.Add("Sochi", "3", "09:00")
	r.Add("Sochi", "4", "07:00")

	var numbers []string
	for _, rec := range r.Records() {
		if rec.Destination == "Sochi" {
			numbers = append(numbers, rec.TrainNumber)
		}
	}
	want := []string{"1", "3", "4"}
	if len(numbers) != len(want) {
		t.Fatalf("got %v, want %v", numbers, want)
	}
	for i := range want {
		if numbers[i] != want[i] {
			t.Errorf("equal destinations reordered: got %v, want %v", numbers, want)
			break
		}
	}
}

func TestRegistryCyrillicOrdering(t *testing.T) {
	r := NewRegistry()
	r.Add("Москва", "1", "10:00")
	r.Add("Казань", "2", "11:00")
	r.Add("Адлер", "3", "12:00")

	got := r.Records()
	if got[0].Destination != "Адлер" || got[1].Destination != "Казань" || got[2].Destination != "Москва" {
		t.Errorf("unexpected order: %+v", got)
	}
}

func TestRegistryAddAcceptsInputAsIs(t *testing.T) {
	r := NewRegistry()
	rec := r.Add("", "", "9:5")
	if rec.DepartureTime != "9:5" {
		t.Errorf("DepartureTime = %q, want 9:5", rec.DepartureTime)
	}
	if r.Len() != 1 {
		t.Errorf("Len() = %d, want 1", r.Len())
	}
}

func TestRegistryRecordsReturnsCopy(t *testing.T) {
	r := NewRegistry(Record{Destination: "Omsk", TrainNumber: "1", DepartureTime: "10:00"})
	got := r.Records()
	got[0].Destination = "changed"
	if r.Records()[0].Destination != "Omsk" {
		t.Error("Records() exposed internal storage")
	}
}

func TestRegistrySelect(t *testing.T) {
	r := NewRegistry()
	r.Add("Moscow", "101", "08:00")
	r.Add("Kazan", "202", "23:30")
	r.Add("Omsk", "303", "09:00")

	tests := []struct {
		name       string
		searchTime string
		want       []string
	}{
		{"all from midnight", "00:00", []string{"Kazan", "Moscow", "Omsk"}},
		{"boundary is inclusive", "09:00", []string{"Kazan", "Omsk"}},
		{"late evening", "23:00", []string{"Kazan"}},
		{"exact last", "23:30", []string{"Kazan"}},
		{"past midnight", "24:00", nil},
		{"after everything", "23:31", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := r.Select(tt.searchTime)
			if got == nil {
				t.Fatal("Select() returned nil, want empty slice")
			}
			if len(got) != len(tt.want) {
				t.Fatalf("Select(%q) = %+v, want destinations %v", tt.searchTime, got, tt.want)
			}
			for i, dest := range tt.want {
				if got[i].Destination != dest {
					t.Errorf("Select(%q)[%d] = %q, want %q", tt.searchTime, i, got[i].Destination, dest)
				}
			}
		})
	}
}

func TestRegistrySelectKeepsDestinationOrder(t *testing.T) {
	r := NewRegistry()
	r.Add("B", "1", "12:00")
	r.Add("A", "2", "15:00")
	r.Add("C", "3", "10:00")

	got := r.Select("11:00")
	if len(got) != 2 || got[0].Destination != "A" || got[1].Destination != "B" {
		t.Errorf("Select() = %+v, want A then B", got)
	}
}

func TestSelectExample(t *testing.T) {
	r := NewRegistry()
	r.Add("Moscow", "101", "08:00")
	r.Add("Kazan", "202", "23:30")

	list := r.Records()
	if list[0].Destination != "Kazan" || list[1].Destination != "Moscow" {
		t.Errorf("Records() = %+v, want Kazan before Moscow", list)
	}

	got := r.Select("09:00")
	if len(got) != 1 {
		t.Fatalf("Select(09:00) = %+v, want one record", got)
	}
	if got[0].DepartureTime != "23:30" {
		t.Errorf("Select(09:00)[0] = %+v, want the 23:30 departure", got[0])
	}
}

func TestReplaceSortsAndDiscards(t *testing.T) {
	r := NewRegistry()
	r.Add("Omsk", "1", "10:00")
	r.Replace([]Record{
		{Destination: "Tver", TrainNumber: "9", DepartureTime: "01:00"},
		{Destination: "Perm", TrainNumber: "8", DepartureTime: "02:00"},
	})

	got := r.Records()
	if len(got) != 2 {
		t.Fatalf("Len = %d, want 2", len(got))
	}
	if got[0].Destination != "Perm" || got[1].Destination != "Tver" {
		t.Errorf("Replace() order = %+v", got)
	}

	r.Replace(nil)
	if r.Len() != 0 {
		t.Errorf("Replace(nil) left %d records", r.Len())
	}
}

func TestValidationErrorsError(t *testing.T) {
	one := ValidationErrors{{Index: 0, Path: "[0]", Err: errString("bad")}}
	if got := one.Error(); got != "validation failed: [0]: bad" {
		t.Errorf("Error() = %q", got)
	}

	two := append(one, &ValidationError{Index: 1, Err: errString("worse")})
	if got := two.Error(); got != "validation failed: [0]: bad (and 1 more)" {
		t.Errorf("Error() = %q", got)
	}
	if got := two.String(); got != "[0]: bad\nworse" {
		t.Errorf("String() = %q", got)
	}
}

type errString string

func (e errString) Error() string { return string(e) }
