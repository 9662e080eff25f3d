package models

import (
	"context"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"bitbucket.org/mmdatafocus/depot_backend/config"
	"bitbucket.org/mmdatafocus/depot_backend/utils"
	"github.com/shopspring/decimal"
	"go.opentelemetry.io/otel"
)

// Derivation and recognition fan out into several store reads/writes, so
// they get parent spans; otelgorm hangs the per-query spans underneath.
var tracer = otel.Tracer("depot-backend")

// Collections are not stored. Every request re-derives the worklist from
// orders x customers x users plus the completion-signal set, so a record
// here is a pure projection of current store state.

const (
	// redis set holding ids of recognized collections
	CollectionsDoneSetKey = "CollectionsDone"

	// marker written into order notes on recognition; its presence is the
	// second completion signal
	collectedMarker = "COLLECTED"
)

type CollectionRecord struct {
	ID           string           `json:"id"`
	OrderId      int              `json:"order_id"`
	CustomerId   int              `json:"customer_id"`
	CustomerName string           `json:"customer_name"`
	CollectedBy  string           `json:"collected_by"`
	CollectedAt  time.Time        `json:"collected_at"`
	Amount       decimal.Decimal  `json:"amount"`
	Type         CollectionType   `json:"type"`
	Status       CollectionStatus `json:"status"`
	Notes        string           `json:"notes"`
}

// CollectionFilter narrows the derived worklist; zero values mean "all".
type CollectionFilter struct {
	Status CollectionStatus
	Type   CollectionType
}

type CollectionSummary struct {
	PendingTotal  decimal.Decimal `json:"pending_total"`
	PendingCredit decimal.Decimal `json:"pending_credit"`
	PendingCheque decimal.Decimal `json:"pending_cheque"`
	CompleteTotal decimal.Decimal `json:"complete_total"`
	Count         int             `json:"count"`
}

// CollectionId builds the composite id, e.g. "17-credit".
func CollectionId(orderId int, collectionType CollectionType) string {
	return fmt.Sprintf("%d-%s", orderId, collectionType)
}

// ParseCollectionId splits a composite id back into order id and type.
func ParseCollectionId(id string) (int, CollectionType, error) {
	idx := strings.LastIndex(id, "-")
	if idx <= 0 {
		return 0, "", utils.BadRequest("invalid collection id")
	}
	orderId, err := strconv.Atoi(id[:idx])
	if err != nil || orderId <= 0 {
		return 0, "", utils.BadRequest("invalid collection id")
	}
	collectionType, err := ParseCollectionType(id[idx+1:])
	if err != nil {
		return 0, "", utils.BadRequest("invalid collection id")
	}
	return orderId, collectionType, nil
}

// CollectionAuditNote is the line written over the order's notes field on
// recognition. It must keep the marker + type adjacent: NoteSignals depends
// on that shape to re-detect the completion on later derivations.
func CollectionAuditNote(collectionType CollectionType, amount decimal.Decimal, actor string, at time.Time, verifyNotes string) string {
	note := fmt.Sprintf("%s %s %s by %s on %s",
		collectedMarker, collectionType, amount.String(), actor, at.Format("2006-01-02"))
	if verifyNotes != "" {
		note += "; " + verifyNotes
	}
	return note
}

// NoteSignals returns the collection ids implied by an order's notes field.
func NoteSignals(orderId int, notes string) []string {
	var ids []string
	if !strings.Contains(notes, collectedMarker) {
		return ids
	}
	if strings.Contains(notes, collectedMarker+" "+string(CollectionTypeCredit)) {
		ids = append(ids, CollectionId(orderId, CollectionTypeCredit))
	}
	if strings.Contains(notes, collectedMarker+" "+string(CollectionTypeCheque)) {
		ids = append(ids, CollectionId(orderId, CollectionTypeCheque))
	}
	return ids
}

// BuildCollections is the pure derivation core. signals is the cached
// completion-signal set (note markers are detected here, per order).
// fallbackUser is the display name of the requesting user, used when an
// order's assigned user cannot be resolved. Orders whose customer (or,
// after fallback, user) cannot be resolved are skipped with a diagnostic.
//
// The result is fully rebuilt on every call and sorted by collected date
// descending, ties broken by id ascending, so equal inputs always produce
// an identical list.
func BuildCollections(orders []*Order, customers []*Customer, users []*User, signals map[string]bool, fallbackUser string) []*CollectionRecord {

	logger := config.GetLogger()

	customersById := make(map[int]*Customer, len(customers))
	for _, c := range customers {
		customersById[c.ID] = c
	}
	usersById := make(map[int]*User, len(users))
	for _, u := range users {
		usersById[u.ID] = u
	}

	isDone := func(id string) bool { return signals[id] }

	records := []*CollectionRecord{}
	for _, order := range orders {
		if !order.CreditBalance.IsPositive() && !order.ChequeBalance.IsPositive() {
			continue
		}

		customer, ok := customersById[order.CustomerId]
		if !ok {
			config.LogWarn(logger, "collection.go", "BuildCollections",
				"skipping order: customer not found", map[string]int{"order_id": order.ID, "customer_id": order.CustomerId})
			continue
		}

		collectedBy := fallbackUser
		if order.AssignedUserId != nil {
			if u, ok := usersById[*order.AssignedUserId]; ok {
				collectedBy = u.Name
			}
		}
		if collectedBy == "" {
			config.LogWarn(logger, "collection.go", "BuildCollections",
				"skipping order: no resolvable user", map[string]int{"order_id": order.ID})
			continue
		}

		noteDone := map[string]bool{}
		for _, id := range NoteSignals(order.ID, order.Notes) {
			noteDone[id] = true
		}

		emit := func(collectionType CollectionType, amount decimal.Decimal) {
			id := CollectionId(order.ID, collectionType)
			status := CollectionStatusPending
			if isDone(id) || noteDone[id] {
				status = CollectionStatusComplete
			}
			records = append(records, &CollectionRecord{
				ID:           id,
				OrderId:      order.ID,
				CustomerId:   customer.ID,
				CustomerName: customer.Name,
				CollectedBy:  collectedBy,
				CollectedAt:  order.OrderDate,
				Amount:       amount,
				Type:         collectionType,
				Status:       status,
				Notes:        order.Notes,
			})
		}

		// credit and cheque balances open independent obligations
		if order.CreditBalance.IsPositive() {
			emit(CollectionTypeCredit, order.CreditBalance)
		}
		if order.ChequeBalance.IsPositive() {
			emit(CollectionTypeCheque, order.ChequeBalance)
		}
	}

	sort.Slice(records, func(i, j int) bool {
		if !records[i].CollectedAt.Equal(records[j].CollectedAt) {
			return records[i].CollectedAt.After(records[j].CollectedAt)
		}
		return records[i].ID < records[j].ID
	})

	return records
}

// FilterCollections keeps records matching the filter, preserving order.
func FilterCollections(records []*CollectionRecord, filter CollectionFilter) []*CollectionRecord {
	results := []*CollectionRecord{}
	for _, r := range records {
		if filter.Status != "" && r.Status != filter.Status {
			continue
		}
		if filter.Type != "" && r.Type != filter.Type {
			continue
		}
		results = append(results, r)
	}
	return results
}

// SummarizeCollections computes aggregate stats over the (filtered) view.
func SummarizeCollections(records []*CollectionRecord) CollectionSummary {
	summary := CollectionSummary{
		PendingTotal:  decimal.Zero,
		PendingCredit: decimal.Zero,
		PendingCheque: decimal.Zero,
		CompleteTotal: decimal.Zero,
	}
	for _, r := range records {
		summary.Count++
		switch r.Status {
		case CollectionStatusPending:
			summary.PendingTotal = summary.PendingTotal.Add(r.Amount)
			if r.Type == CollectionTypeCredit {
				summary.PendingCredit = summary.PendingCredit.Add(r.Amount)
			} else {
				summary.PendingCheque = summary.PendingCheque.Add(r.Amount)
			}
		case CollectionStatusComplete:
			summary.CompleteTotal = summary.CompleteTotal.Add(r.Amount)
		}
	}
	return summary
}

// nextOutstanding applies a recognized amount to a customer's outstanding
// balance, floored at zero.
func nextOutstanding(current, amount decimal.Decimal) decimal.Decimal {
	next := current.Sub(amount)
	if next.IsNegative() {
		return decimal.Zero
	}
	return next
}

// loadCompletionSignals reads the cached signal-set ids into a lookup map.
func loadCompletionSignals() (map[string]bool, error) {
	members, err := config.GetRedisSetMembers(CollectionsDoneSetKey)
	if err != nil {
		return nil, err
	}
	signals := make(map[string]bool, len(members))
	for _, m := range members {
		signals[m] = true
	}
	return signals, nil
}

// DeriveCollections loads the three source tables and the signal set, then
// rebuilds the full worklist.
func DeriveCollections(ctx context.Context) ([]*CollectionRecord, error) {

	ctx, span := tracer.Start(ctx, "DeriveCollections")
	defer span.End()

	signals, err := loadCompletionSignals()
	if err != nil {
		return nil, err
	}

	orders, err := GetAllOrders(ctx)
	if err != nil {
		return nil, err
	}
	customers, err := GetAllCustomers(ctx)
	if err != nil {
		return nil, err
	}
	users, err := GetAllUsers(ctx)
	if err != nil {
		return nil, err
	}

	fallbackUser, _ := utils.GetUserNameFromContext(ctx)
	return BuildCollections(orders, customers, users, signals, fallbackUser), nil
}

// GetCollections derives and filters the worklist.
func GetCollections(ctx context.Context, filter CollectionFilter) ([]*CollectionRecord, error) {
	records, err := DeriveCollections(ctx)
	if err != nil {
		return nil, err
	}
	return FilterCollections(records, filter), nil
}

// GetCollectionSummary derives, filters and summarizes.
func GetCollectionSummary(ctx context.Context, filter CollectionFilter) (*CollectionSummary, error) {
	records, err := GetCollections(ctx, filter)
	if err != nil {
		return nil, err
	}
	summary := SummarizeCollections(records)
	return &summary, nil
}

// RecognizeCollection acknowledges an obligation as collected: zeroes the
// matching order balance, overwrites the order notes with the audit line
// (prior notes are appended after it), reduces the customer's outstanding
// balance floored at zero, and records the id in the signal set.
//
// The signal-set write happens FIRST and membership is authoritative for
// "already recognized": if the balance writes fail the obligation shows as
// complete after re-derivation, which is the safe direction (no double
// charge). Partial writes are not rolled back; the caller re-derives from
// the store afterwards.
func RecognizeCollection(ctx context.Context, id string, verifyNotes string) (*CollectionRecord, error) {

	ctx, span := tracer.Start(ctx, "RecognizeCollection")
	defer span.End()

	logger := config.GetLogger()

	orderId, collectionType, err := ParseCollectionId(id)
	if err != nil {
		return nil, err
	}

	actor, ok := utils.GetUserNameFromContext(ctx)
	if !ok || actor == "" {
		return nil, utils.BadRequest("user name is required")
	}

	var result *CollectionRecord
	err = utils.OrderLock(ctx, orderId, "collection.go", "RecognizeCollection", func() error {

		db := config.GetDB()

		var order Order
		if err := db.WithContext(ctx).First(&order, orderId).Error; err != nil {
			return utils.ErrorRecordNotFound
		}

		var amount decimal.Decimal
		switch collectionType {
		case CollectionTypeCredit:
			amount = order.CreditBalance
		case CollectionTypeCheque:
			amount = order.ChequeBalance
		}
		if !amount.IsPositive() {
			return utils.BadRequest("nothing to collect for " + id)
		}

		done, err := config.IsRedisSetMember(CollectionsDoneSetKey, id)
		if err != nil {
			return err
		}
		if done {
			return utils.BadRequest("collection already recognized")
		}

		// signal first; membership is authoritative even if the writes
		// below fail
		if err := config.AddRedisSet(CollectionsDoneSetKey, id); err != nil {
			return err
		}

		auditNote := CollectionAuditNote(collectionType, amount, actor, time.Now().UTC(), verifyNotes)
		notes := auditNote
		if order.Notes != "" {
			notes += "\n" + order.Notes
		}

		balanceColumn := "credit_balance"
		if collectionType == CollectionTypeCheque {
			balanceColumn = "cheque_balance"
		}
		if err := db.WithContext(ctx).Model(&Order{}).Where("id = ?", order.ID).
			Updates(map[string]interface{}{
				balanceColumn: decimal.Zero,
				"notes":       notes,
			}).Error; err != nil {
			config.LogError(logger, "collection.go", "RecognizeCollection", "order update failed", id, err)
			return err
		}

		// separate write, no atomicity with the order update
		var customer Customer
		if err := db.WithContext(ctx).First(&customer, order.CustomerId).Error; err != nil {
			config.LogWarn(logger, "collection.go", "RecognizeCollection",
				"customer not found, outstanding balance not adjusted", map[string]int{"order_id": order.ID, "customer_id": order.CustomerId})
		} else {
			newBalance := nextOutstanding(customer.OutstandingBalance, amount)
			if err := db.WithContext(ctx).Model(&Customer{}).Where("id = ?", customer.ID).
				Update("outstanding_balance", newBalance).Error; err != nil {
				config.LogError(logger, "collection.go", "RecognizeCollection", "customer update failed", id, err)
				return err
			}
		}

		result = &CollectionRecord{
			ID:           id,
			OrderId:      order.ID,
			CustomerId:   order.CustomerId,
			CustomerName: customer.Name,
			CollectedBy:  actor,
			CollectedAt:  order.OrderDate,
			Amount:       amount,
			Type:         collectionType,
			Status:       CollectionStatusComplete,
			Notes:        notes,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}
