package website

import (
	"reflect"
	"testing"
)

func TestScanPrograms(t *testing.T) {
	tests := []struct {
		name string
		html string
		want []string
	}{
		{
			name: "multiple programs sorted",
			html: `<html><body>
				<h2>Youth Camp Registration</h2>
				<p>Join our Kids Club today!</p>
				<a href="/tickets">Family Night specials</a>
			</body></html>`,
			want: []string{"family_night", "kids_club", "youth_camp"},
		},
		{
			name: "case insensitive",
			html: `<p>KIDS CLUB signups open</p>`,
			want: []string{"kids_club"},
		},
		{
			name: "one type counted once across phrases",
			html: `<p>youth camp</p><p>summer camp</p><p>kids camp</p>`,
			want: []string{"youth_camp"},
		},
		{
			name: "keyword split by markup does not match",
			html: `<div data-label="kids">club</div>`,
			want: []string{},
		},
		{
			name: "no signals",
			html: `<html><body><p>Season tickets on sale now.</p></body></html>`,
			want: []string{},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := scanPrograms(tc.html)
			if !reflect.DeepEqual(got, tc.want) {
				t.Fatalf("scanPrograms = %v, want %v", got, tc.want)
			}
		})
	}
}
