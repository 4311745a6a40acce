package notify

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
)

func TestNewClientRequiresCredentials(t *testing.T) {
	if c := NewClient("", "token", "+15550000000"); c != nil {
		t.Fatal("client created without account SID")
	}
	if c := NewClient("AC123", "", "+15550000000"); c != nil {
		t.Fatal("client created without auth token")
	}
	if c := NewClient("AC123", "token", ""); c != nil {
		t.Fatal("client created without from number")
	}
	if c := NewClient("AC123", "token", "+15550000000"); c == nil {
		t.Fatal("client not created with full credentials")
	}
}

func TestBudgetAlertBody(t *testing.T) {
	a := BudgetAlert{
		CategoryName: "Groceries",
		Spent:        decimal.RequireFromString("412.5"),
		Remaining:    decimal.RequireFromString("87.5"),
	}
	want := "Budget Update: You spent $412.50 on Groceries. $87.50 remaining in this category."
	if got := a.Body(); got != want {
		t.Fatalf("Body() = %q, want %q", got, want)
	}
}

func TestSendBudgetAlertRequest(t *testing.T) {
	var gotPath, gotAuthUser, gotTo, gotFrom, gotBody string

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotAuthUser, _, _ = r.BasicAuth()
		if err := r.ParseForm(); err != nil {
			t.Errorf("parse form: %v", err)
		}
		gotTo = r.PostFormValue("To")
		gotFrom = r.PostFormValue("From")
		gotBody = r.PostFormValue("Body")
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"sid": "SM123"}`))
	}))
	defer srv.Close()

	c := NewClient("AC123", "token", "+15550000000")
	c.baseURL = srv.URL

	sid, err := c.SendBudgetAlert(context.Background(), BudgetAlert{
		Destination:  "+15551234567",
		CategoryName: "Dining",
		Spent:        decimal.NewFromInt(200),
		Remaining:    decimal.NewFromInt(50),
	})
	if err != nil {
		t.Fatalf("SendBudgetAlert: %v", err)
	}
	if sid != "SM123" {
		t.Fatalf("sid = %q, want SM123", sid)
	}
	if gotPath != "/2010-04-01/Accounts/AC123/Messages.json" {
		t.Fatalf("path = %q", gotPath)
	}
	if gotAuthUser != "AC123" {
		t.Fatalf("basic auth user = %q", gotAuthUser)
	}
	if gotTo != "+15551234567" || gotFrom != "+15550000000" {
		t.Fatalf("To = %q, From = %q", gotTo, gotFrom)
	}
	if !strings.Contains(gotBody, "Dining") {
		t.Fatalf("body = %q, missing category name", gotBody)
	}
}

func TestSendSurfacesTwilioError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"message": "The 'To' number is not a valid phone number."}`))
	}))
	defer srv.Close()

	c := NewClient("AC123", "token", "+15550000000")
	c.baseURL = srv.URL

	_, err := c.SendBudgetAlert(context.Background(), BudgetAlert{Destination: "bogus"})
	if err == nil || !strings.Contains(err.Error(), "not a valid phone number") {
		t.Fatalf("err = %v, want twilio message surfaced", err)
	}
}
