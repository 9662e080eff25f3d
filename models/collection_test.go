package models

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
)

func dec(t *testing.T, value string) decimal.Decimal {
	t.Helper()
	d, err := decimal.NewFromString(value)
	if err != nil {
		t.Fatalf("bad decimal %q: %v", value, err)
	}
	return d
}

func day(t *testing.T, value string) time.Time {
	t.Helper()
	d, err := time.Parse("2006-01-02", value)
	if err != nil {
		t.Fatalf("bad date %q: %v", value, err)
	}
	return d
}

func testOrder(id int, customerId int, date time.Time, credit, cheque decimal.Decimal) *Order {
	return &Order{
		ID:            id,
		CustomerId:    customerId,
		OrderDate:     date,
		CreditBalance: credit,
		ChequeBalance: cheque,
	}
}

func TestParseCollectionId(t *testing.T) {
	orderId, collectionType, err := ParseCollectionId("17-credit")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if orderId != 17 || collectionType != CollectionTypeCredit {
		t.Fatalf("got %d %s", orderId, collectionType)
	}

	for _, bad := range []string{"", "17", "credit", "-credit", "0-credit", "17-cash", "x-cheque"} {
		if _, _, err := ParseCollectionId(bad); err == nil {
			t.Fatalf("expected error for %q", bad)
		}
	}
}

func TestCollectionIdRoundTrip(t *testing.T) {
	id := CollectionId(42, CollectionTypeCheque)
	if id != "42-cheque" {
		t.Fatalf("got %q", id)
	}
	orderId, collectionType, err := ParseCollectionId(id)
	if err != nil || orderId != 42 || collectionType != CollectionTypeCheque {
		t.Fatalf("round trip failed: %d %s %v", orderId, collectionType, err)
	}
}

func TestAuditNoteDetectedAsSignal(t *testing.T) {
	note := CollectionAuditNote(CollectionTypeCredit, decimal.NewFromInt(100), "Aye Chan", time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC), "paid in full")

	ids := NoteSignals(31, note)
	if len(ids) != 1 || ids[0] != "31-credit" {
		t.Fatalf("got %v", ids)
	}

	// a cheque marker on the same order is an independent signal
	both := note + "\nCOLLECTED cheque 50 by Aye Chan on 2026-03-02"
	ids = NoteSignals(31, both)
	if len(ids) != 2 {
		t.Fatalf("got %v", ids)
	}

	if got := NoteSignals(31, "deliver before noon"); len(got) != 0 {
		t.Fatalf("got %v", got)
	}
}

func TestBuildCollectionsCreditOnly(t *testing.T) {
	customers := []*Customer{{ID: 5, Name: "U Ba"}}
	users := []*User{{ID: 9, Name: "Driver One"}}
	uid := 9
	orders := []*Order{
		testOrder(1, 5, day(t, "2026-01-10"), dec(t, "100"), decimal.Zero),
	}
	orders[0].AssignedUserId = &uid

	records := BuildCollections(orders, customers, users, map[string]bool{}, "")
	if len(records) != 1 {
		t.Fatalf("expected 1 record, got %d", len(records))
	}
	r := records[0]
	if r.ID != "1-credit" {
		t.Errorf("id = %q", r.ID)
	}
	if !r.Amount.Equal(dec(t, "100")) {
		t.Errorf("amount = %s", r.Amount)
	}
	if r.Status != CollectionStatusPending {
		t.Errorf("status = %s", r.Status)
	}
	if r.Type != CollectionTypeCredit {
		t.Errorf("type = %s", r.Type)
	}
	if r.CustomerName != "U Ba" || r.CollectedBy != "Driver One" {
		t.Errorf("join fields = %q %q", r.CustomerName, r.CollectedBy)
	}
}

func TestBuildCollectionsBothBalances(t *testing.T) {
	customers := []*Customer{{ID: 5, Name: "U Ba"}}
	orders := []*Order{
		testOrder(2, 5, day(t, "2026-01-10"), dec(t, "60"), dec(t, "40")),
	}

	records := BuildCollections(orders, customers, nil, map[string]bool{}, "Counter Staff")
	if len(records) != 2 {
		t.Fatalf("expected 2 records, got %d", len(records))
	}
	// same date, so id ascending breaks the tie
	if records[0].ID != "2-cheque" || records[1].ID != "2-credit" {
		t.Fatalf("order = %q %q", records[0].ID, records[1].ID)
	}
	for _, r := range records {
		if r.CollectedBy != "Counter Staff" {
			t.Errorf("fallback user not applied: %q", r.CollectedBy)
		}
	}
}

func TestBuildCollectionsSkipsUnresolvable(t *testing.T) {
	customers := []*Customer{{ID: 5, Name: "U Ba"}}
	orders := []*Order{
		testOrder(1, 5, day(t, "2026-01-10"), dec(t, "10"), decimal.Zero),
		testOrder(2, 99, day(t, "2026-01-11"), dec(t, "20"), decimal.Zero), // no such customer
		testOrder(3, 5, day(t, "2026-01-12"), dec(t, "30"), decimal.Zero), // no user, no fallback
	}

	records := BuildCollections(orders, customers, nil, map[string]bool{}, "")
	if len(records) != 0 {
		t.Fatalf("expected all orders skipped without a fallback user, got %d", len(records))
	}

	records = BuildCollections(orders, customers, nil, map[string]bool{}, "Me")
	if len(records) != 2 {
		t.Fatalf("expected the unresolvable-customer order skipped, got %d", len(records))
	}
	for _, r := range records {
		if r.OrderId == 2 {
			t.Errorf("order 2 should have been skipped")
		}
	}
}

func TestBuildCollectionsCompletionSignals(t *testing.T) {
	customers := []*Customer{{ID: 5, Name: "U Ba"}}
	orders := []*Order{
		testOrder(1, 5, day(t, "2026-01-10"), dec(t, "10"), decimal.Zero),
		testOrder(2, 5, day(t, "2026-01-11"), dec(t, "20"), decimal.Zero),
	}
	orders[1].Notes = "COLLECTED credit 20 by Someone on 2026-02-01"

	signals := map[string]bool{"1-credit": true}
	records := BuildCollections(orders, customers, nil, signals, "Me")
	if len(records) != 2 {
		t.Fatalf("expected 2 records, got %d", len(records))
	}
	for _, r := range records {
		if r.Status != CollectionStatusComplete {
			t.Errorf("%s: status = %s, want complete", r.ID, r.Status)
		}
	}
}

func TestBuildCollectionsIdempotent(t *testing.T) {
	customers := []*Customer{{ID: 5, Name: "U Ba"}, {ID: 6, Name: "Daw Mya"}}
	orders := []*Order{
		testOrder(1, 5, day(t, "2026-01-10"), dec(t, "10"), dec(t, "5")),
		testOrder(2, 6, day(t, "2026-01-11"), decimal.Zero, dec(t, "20")),
		testOrder(3, 5, day(t, "2026-01-09"), dec(t, "7"), decimal.Zero),
	}
	signals := map[string]bool{"2-cheque": true}

	first := BuildCollections(orders, customers, nil, signals, "Me")
	second := BuildCollections(orders, customers, nil, signals, "Me")

	if len(first) != len(second) {
		t.Fatalf("lengths differ: %d vs %d", len(first), len(second))
	}
	for i := range first {
		a, b := first[i], second[i]
		if a.ID != b.ID || a.Status != b.Status || !a.Amount.Equal(b.Amount) {
			t.Errorf("record %d differs: %+v vs %+v", i, a, b)
		}
	}
}

func TestBuildCollectionsSortedByDateDesc(t *testing.T) {
	customers := []*Customer{{ID: 5, Name: "U Ba"}}
	orders := []*Order{
		testOrder(1, 5, day(t, "2026-01-01"), dec(t, "10"), decimal.Zero),
		testOrder(2, 5, day(t, "2026-03-01"), dec(t, "10"), decimal.Zero),
		testOrder(3, 5, day(t, "2026-02-01"), dec(t, "10"), decimal.Zero),
	}

	records := BuildCollections(orders, customers, nil, map[string]bool{}, "Me")
	want := []string{"2-credit", "3-credit", "1-credit"}
	if len(records) != len(want) {
		t.Fatalf("got %d records", len(records))
	}
	for i, id := range want {
		if records[i].ID != id {
			t.Errorf("position %d: got %q, want %q", i, records[i].ID, id)
		}
	}
}

func TestFilterCollections(t *testing.T) {
	customers := []*Customer{{ID: 5, Name: "U Ba"}}
	orders := []*Order{
		testOrder(1, 5, day(t, "2026-01-01"), dec(t, "10"), decimal.Zero),
		testOrder(2, 5, day(t, "2026-01-02"), dec(t, "10"), decimal.Zero),
		testOrder(3, 5, day(t, "2026-01-03"), dec(t, "10"), decimal.Zero),
		testOrder(4, 5, day(t, "2026-01-04"), decimal.Zero, dec(t, "10")),
		testOrder(5, 5, day(t, "2026-01-05"), decimal.Zero, dec(t, "10")),
		testOrder(6, 5, day(t, "2026-01-06"), decimal.Zero, dec(t, "10")),
	}
	// 3 credit pending, 2 cheque pending, 1 cheque complete
	signals := map[string]bool{"6-cheque": true}
	records := BuildCollections(orders, customers, nil, signals, "Me")

	got := FilterCollections(records, CollectionFilter{Status: CollectionStatusPending, Type: CollectionTypeCheque})
	if len(got) != 2 {
		t.Fatalf("expected 2 records, got %d", len(got))
	}
	if got[0].ID != "5-cheque" || got[1].ID != "4-cheque" {
		t.Errorf("order = %q %q", got[0].ID, got[1].ID)
	}

	all := FilterCollections(records, CollectionFilter{})
	if len(all) != 6 {
		t.Errorf("empty filter should keep everything, got %d", len(all))
	}
}

func TestSummarizeCollections(t *testing.T) {
	customers := []*Customer{{ID: 5, Name: "U Ba"}}
	orders := []*Order{
		testOrder(1, 5, day(t, "2026-01-01"), dec(t, "100"), decimal.Zero),
		testOrder(2, 5, day(t, "2026-01-02"), decimal.Zero, dec(t, "40")),
		testOrder(3, 5, day(t, "2026-01-03"), dec(t, "60"), decimal.Zero),
	}
	signals := map[string]bool{"3-credit": true}
	records := BuildCollections(orders, customers, nil, signals, "Me")

	summary := SummarizeCollections(records)
	if summary.Count != 3 {
		t.Errorf("count = %d", summary.Count)
	}
	if !summary.PendingTotal.Equal(dec(t, "140")) {
		t.Errorf("pending total = %s", summary.PendingTotal)
	}
	if !summary.PendingCredit.Equal(dec(t, "100")) {
		t.Errorf("pending credit = %s", summary.PendingCredit)
	}
	if !summary.PendingCheque.Equal(dec(t, "40")) {
		t.Errorf("pending cheque = %s", summary.PendingCheque)
	}
	if !summary.CompleteTotal.Equal(dec(t, "60")) {
		t.Errorf("complete total = %s", summary.CompleteTotal)
	}
}

func TestNextOutstandingFlooredAtZero(t *testing.T) {
	cases := []struct {
		current, amount, want string
	}{
		{"50", "80", "0"},
		{"100", "100", "0"},
		{"100", "40", "60"},
		{"0", "10", "0"},
	}
	for _, tc := range cases {
		got := nextOutstanding(dec(t, tc.current), dec(t, tc.amount))
		if !got.Equal(dec(t, tc.want)) {
			t.Errorf("nextOutstanding(%s, %s) = %s, want %s", tc.current, tc.amount, got, tc.want)
		}
	}
}
