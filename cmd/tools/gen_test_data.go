package main

import (
	"flag"
	"fmt"
	"math/rand"
	"time"

	"github.com/blugelabs/bluge"
	"github.com/dgraph-io/badger/v4"
	"github.com/google/uuid"
	"github.com/mama165/sdk-go/logs"
	"github.com/samber/lo"

	"github.com/crazinneeees/svetofor/repositories"
)

var actors = []string{"alice", "bob", "carol", "dmitri", "elena", "farid"}

var colors = []string{"red", "yellow", "green", "none"}

func main() {
	badgerPath := flag.String("badger", "./data/badger", "Badger destination")
	blugePath := flag.String("bluge", "./data/bluge", "Bluge destination")
	count := flag.Int("count", 50, "Number of transitions to generate")
	flag.Parse()

	fmt.Println("🚀 Svetofor : Génération des transitions de test...")

	db, err := badger.Open(badger.DefaultOptions(*badgerPath).
		WithLoggingLevel(badger.ERROR))
	if err != nil {
		panic(fmt.Sprintf("Impossible d'ouvrir Badger : %v", err))
	}
	defer db.Close()

	writer, err := bluge.OpenWriter(bluge.DefaultConfig(*blugePath))
	if err != nil {
		panic(fmt.Sprintf("Impossible d'ouvrir Bluge : %v", err))
	}
	defer writer.Close()

	log := logs.GetLoggerFromString("ERROR")
	journal := repositories.NewTransitionRepository(db, writer, log, lo.ToPtr(*count))

	// On étale les timestamps dans le passé pour que la pagination ait du relief
	at := time.Now().UTC().Add(-time.Duration(*count) * time.Minute)

	for i := 0; i < *count; i++ {
		transition := repositories.StoredTransition{
			ID:      uuid.New(),
			Color:   colors[rand.Intn(len(colors))],
			Actor:   actors[rand.Intn(len(actors))],
			ActorID: uuid.New(),
			At:      at,
		}
		if err := journal.Store(transition); err != nil {
			fmt.Printf("❌ Erreur transition %d : %v\n", i, err)
			continue
		}
		at = at.Add(time.Minute)
	}

	fmt.Printf("📄 %d transitions générées dans %s\n", *count, *badgerPath)
	fmt.Println("\n✅ Prêt ! Tu peux maintenant lancer le Viewer ou interroger /history")
}
