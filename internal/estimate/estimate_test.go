package estimate

import "testing"

func TestParseCalorieReply(t *testing.T) {
	tests := []struct {
		reply   string
		want    int
		wantErr bool
	}{
		{reply: "450", want: 450},
		{reply: "  320 \n", want: 320},
		{reply: "Roughly 520 kcal.", want: 520},
		{reply: "zero", wantErr: true},
		{reply: "", wantErr: true},
		{reply: "-100", wantErr: true},
	}
	for _, tc := range tests {
		t.Run(tc.reply, func(t *testing.T) {
			got, err := parseCalorieReply(tc.reply)
			if tc.wantErr {
				if err == nil {
					t.Fatalf("expected error, got %d", got)
				}
				return
			}
			if err != nil {
				t.Fatalf("parse %q: %v", tc.reply, err)
			}
			if got != tc.want {
				t.Fatalf("expected %d, got %d", tc.want, got)
			}
		})
	}
}
