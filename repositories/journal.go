//go:generate go run go.uber.org/mock/mockgen -source=journal.go -destination=../mocks/mock_transition_repository.go -package=mocks
package repositories

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/blugelabs/bluge"
	"github.com/dgraph-io/badger/v4"
	"github.com/google/uuid"
	"github.com/samber/lo"
)

const transitionPrefix = "tr:"

type ITransitionRepository interface {
	Store(transition StoredTransition) error
	Recent(cursor *string) ([]StoredTransition, *string, error)
	SearchByActor(ctx context.Context, actor string, limit int) ([]StoredTransition, error)
}

// TransitionRepository persists accepted signal transitions in BadgerDB and
// mirrors them into a Bluge index so they can be searched by actor.
type TransitionRepository struct {
	db               *badger.DB
	index            *bluge.Writer
	log              *slog.Logger
	limitTransitions *int
}

func NewTransitionRepository(db *badger.DB, index *bluge.Writer,
	log *slog.Logger, limitTransitions *int) TransitionRepository {
	return TransitionRepository{db: db, index: index, log: log, limitTransitions: limitTransitions}
}

type StoredTransition struct {
	ID      uuid.UUID `json:"id"`
	Color   string    `json:"color"`
	Actor   string    `json:"actor"`
	ActorID uuid.UUID `json:"actor_id"`
	At      time.Time `json:"at"`
}

// Store persists a transition in BadgerDB and indexes it in Bluge.
// The key is formatted as "tr:{timestamp_padded}:{uuid}" to:
//  1. Ensure chronological sorting using 19-digit zero padding (lexicographical order).
//  2. Prevent data loss by using UUID as a collision disconnector if two transitions
//     arrive at the same nanosecond.
//
// The Bluge document reuses the Badger key as its _id, so a search hit can be
// hydrated with a single point lookup.
func (t TransitionRepository) Store(transition StoredTransition) error {
	key := fmt.Sprintf("%s%019d:%s",
		transitionPrefix,
		transition.At.UnixNano(),
		transition.ID,
	)
	bytes, err := json.Marshal(transition)
	if err != nil {
		return err
	}

	err = t.db.Update(func(txn *badger.Txn) error {
		return txn.Set([]byte(key), bytes)
	})
	if err != nil {
		return err
	}

	doc := bluge.NewDocument(key).
		AddField(bluge.NewTextField("actor", transition.Actor).StoreValue()).
		AddField(bluge.NewTextField("color", transition.Color)).
		AddField(bluge.NewDateTimeField("at", transition.At))
	return t.index.Update(doc.ID(), doc)
}

// Recent retrieves transitions newest first using a reverse prefix scan.
// Thanks to the padded timestamp in the key, entries are naturally sorted by time.
// It stops collecting once the configured limitTransitions is reached and
// returns a nil cursor on the last page.
func (t TransitionRepository) Recent(cursor *string) ([]StoredTransition, *string, error) {
	var transitions []StoredTransition
	var lastKey string
	pageFull := false

	err := t.db.View(func(txn *badger.Txn) error {
		prefix := []byte(transitionPrefix)
		prefixLen := len(transitionPrefix)
		options := badger.DefaultIteratorOptions
		options.Reverse = true
		it := txn.NewIterator(options)
		defer it.Close()

		var seekKey []byte
		switch cursor {
		case nil:
			// Seek past every possible timestamp, then walk backwards
			seekKey = append(prefix, []byte("9999999999999999999")...)
		default:
			seekKey = append(prefix, []byte(*cursor)...)
		}

		it.Seek(seekKey)

		if cursor != nil && it.ValidForPrefix(prefix) {
			it.Next()
		}

		for ; it.ValidForPrefix(prefix); it.Next() {
			if t.limitTransitions != nil && len(transitions) == *t.limitTransitions {
				t.log.Debug(fmt.Sprintf("Maximum of %d transitions reached", *t.limitTransitions))
				pageFull = true
				break
			}
			item := it.Item()
			// Memorize cursor part of the actual key
			lastKey = string(item.Key()[prefixLen:])
			err := item.Value(func(value []byte) error {
				var transition StoredTransition
				if err := json.Unmarshal(value, &transition); err != nil {
					return err
				}
				transitions = append(transitions, transition)
				return nil
			})
			if err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, nil, err
	}

	if !pageFull {
		return transitions, nil, nil
	}
	return transitions, lo.ToPtr(lastKey), nil
}

// SearchByActor runs a full-text match on the actor field and hydrates every
// hit from BadgerDB. Results come back in relevance order.
func (t TransitionRepository) SearchByActor(ctx context.Context, actor string, limit int) ([]StoredTransition, error) {
	reader, err := t.index.Reader()
	if err != nil {
		return nil, err
	}
	defer reader.Close()

	query := bluge.NewMatchQuery(actor).SetField("actor")
	request := bluge.NewTopNSearch(limit, query)

	iterator, err := reader.Search(ctx, request)
	if err != nil {
		return nil, err
	}

	var keys []string
	match, err := iterator.Next()
	for err == nil && match != nil {
		var key string
		visitErr := match.VisitStoredFields(func(field string, value []byte) bool {
			if field == "_id" {
				key = string(value)
			}
			return true
		})
		if visitErr != nil {
			return nil, visitErr
		}
		if key != "" {
			keys = append(keys, key)
		}
		match, err = iterator.Next()
	}
	if err != nil {
		return nil, err
	}

	var transitions []StoredTransition
	err = t.db.View(func(txn *badger.Txn) error {
		for _, key := range keys {
			item, err := txn.Get([]byte(key))
			if err != nil {
				// The index can reference an entry Badger already dropped
				t.log.Warn("Indexed transition missing from store", "key", key)
				continue
			}
			err = item.Value(func(value []byte) error {
				var transition StoredTransition
				if err := json.Unmarshal(value, &transition); err != nil {
					return err
				}
				transitions = append(transitions, transition)
				return nil
			})
			if err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return transitions, nil
}
