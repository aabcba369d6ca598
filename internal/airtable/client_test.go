package airtable

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
)

func newTestClient(handler http.HandlerFunc) (*Client, *httptest.Server) {
	server := httptest.NewServer(handler)
	client := NewClient(server.URL, "appTestBase", "key-test")
	return client, server
}

func TestGetRecord(t *testing.T) {
	client, server := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/appTestBase/Hosts/recHost1" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		if got := r.Header.Get("Authorization"); got != "Bearer key-test" {
			t.Errorf("unexpected auth header %q", got)
		}
		json.NewEncoder(w).Encode(map[string]interface{}{
			"id": "recHost1",
			"fields": map[string]interface{}{
				"Location": "London",
				"Tier":     "VIP",
			},
		})
	})
	defer server.Close()

	record, err := client.GetRecord(context.Background(), "Hosts", "recHost1")
	if err != nil {
		t.Fatalf("GetRecord: %v", err)
	}
	if record.ID != "recHost1" {
		t.Errorf("got ID %q, want recHost1", record.ID)
	}
	if StringField(record.Fields, "Location") != "London" {
		t.Errorf("got Location %q", StringField(record.Fields, "Location"))
	}
}

func TestGetRecordNotFound(t *testing.T) {
	client, server := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})
	defer server.Close()

	_, err := client.GetRecord(context.Background(), "Hosts", "recMissing")
	if !errors.Is(err, ErrRecordNotFound) {
		t.Fatalf("got %v, want ErrRecordNotFound", err)
	}
}

func TestListRecordsFollowsPagination(t *testing.T) {
	calls := 0
	client, server := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		calls++
		if calls == 1 {
			if r.URL.Query().Get("filterByFormula") == "" {
				t.Error("expected filterByFormula on first page")
			}
			json.NewEncoder(w).Encode(map[string]interface{}{
				"records": []map[string]interface{}{
					{"id": "rec1", "fields": map[string]interface{}{}},
					{"id": "rec2", "fields": map[string]interface{}{}},
				},
				"offset": "page2",
			})
			return
		}
		if r.URL.Query().Get("offset") != "page2" {
			t.Errorf("expected offset page2, got %q", r.URL.Query().Get("offset"))
		}
		json.NewEncoder(w).Encode(map[string]interface{}{
			"records": []map[string]interface{}{
				{"id": "rec3", "fields": map[string]interface{}{}},
			},
		})
	})
	defer server.Close()

	records, err := client.ListRecords(context.Background(), "Nannies", &ListOptions{
		FilterByFormula: `{Badge}="Verified"`,
	})
	if err != nil {
		t.Fatalf("ListRecords: %v", err)
	}
	if len(records) != 3 {
		t.Fatalf("got %d records, want 3", len(records))
	}
	if calls != 2 {
		t.Errorf("got %d calls, want 2", calls)
	}
}

func TestCreateRecordSendsFields(t *testing.T) {
	client, server := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("got method %s, want POST", r.Method)
		}
		var body struct {
			Fields map[string]interface{} `json:"fields"`
		}
		json.NewDecoder(r.Body).Decode(&body)
		if body.Fields["Status"] != "pending" {
			t.Errorf("got Status %v, want pending", body.Fields["Status"])
		}
		json.NewEncoder(w).Encode(map[string]interface{}{
			"id":     "recNew",
			"fields": body.Fields,
		})
	})
	defer server.Close()

	record, err := client.CreateRecord(context.Background(), "Matches", map[string]interface{}{
		"Status": "pending",
	})
	if err != nil {
		t.Fatalf("CreateRecord: %v", err)
	}
	if record.ID != "recNew" {
		t.Errorf("got ID %q, want recNew", record.ID)
	}
}

func TestUpdateRecordUsesPatch(t *testing.T) {
	client, server := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPatch {
			t.Errorf("got method %s, want PATCH", r.Method)
		}
		json.NewEncoder(w).Encode(map[string]interface{}{
			"id":     "recMatch1",
			"fields": map[string]interface{}{"Status": "passed"},
		})
	})
	defer server.Close()

	record, err := client.UpdateRecord(context.Background(), "Matches", "recMatch1", map[string]interface{}{
		"Status": "passed",
	})
	if err != nil {
		t.Fatalf("UpdateRecord: %v", err)
	}
	if StringField(record.Fields, "Status") != "passed" {
		t.Errorf("got Status %q", StringField(record.Fields, "Status"))
	}
}

func TestUpstreamErrorSurfacesMessage(t *testing.T) {
	client, server := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnprocessableEntity)
		json.NewEncoder(w).Encode(map[string]interface{}{
			"error": map[string]interface{}{
				"type":    "INVALID_VALUE_FOR_COLUMN",
				"message": "Field Status cannot accept value",
			},
		})
	})
	defer server.Close()

	_, err := client.CreateRecord(context.Background(), "Matches", map[string]interface{}{"Status": 42})
	if err == nil {
		t.Fatal("expected error")
	}
}
