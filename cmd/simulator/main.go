package main

import (
	"flag"
	"fmt"
	"math/rand"
	"os"
	"sort"
	"sync"
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	// Global flags
	apiURL := "http://localhost:8080"
	if envURL := os.Getenv("API_URL"); envURL != "" {
		apiURL = envURL
	}

	command := os.Args[1]
	args := os.Args[2:]

	switch command {
	case "play":
		playCmd(apiURL, args)
	case "leaderboard":
		leaderboardCmd(apiURL, args)
	case "help", "-h", "--help":
		printUsage()
	default:
		fmt.Printf("Unknown command: %s\n\n", command)
		printUsage()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println(`Grid Game Simulator - Load generator for the match engine

USAGE:
  simulator <command> [options]

COMMANDS:
  play         Register users and play random concurrent games
  leaderboard  Print the current top-3 for a metric
  help         Show this help message

ENVIRONMENT:
  API_URL   Backend API URL (default: http://localhost:8080)

EXAMPLES:
  # 50 games among 10 users on 8 workers
  simulator play

  # Heavier run
  simulator play --games=500 --users=25 --workers=16

  # Check the boards afterwards
  simulator leaderboard --metric=wins
  simulator leaderboard --metric=efficiency`)
}

func playCmd(apiURL string, args []string) {
	fs := flag.NewFlagSet("play", flag.ExitOnError)
	games := fs.Int("games", 50, "Number of games to play")
	users := fs.Int("users", 10, "Number of users to register")
	workers := fs.Int("workers", 8, "Number of concurrent games")
	fs.Parse(args)

	if *users < 2 {
		fmt.Println("Error: --users must be at least 2")
		os.Exit(1)
	}

	client := NewAPIClient(apiURL)

	fmt.Printf("Registering %d users... ", *users)
	userIDs := make([]string, 0, *users)
	for i := 0; i < *users; i++ {
		id, err := client.CreateUser(fmt.Sprintf("sim-user-%d", i+1))
		if err != nil {
			fmt.Printf("FAILED\n  Error: %v\n", err)
			os.Exit(1)
		}
		userIDs = append(userIDs, id)
	}
	fmt.Println("OK")

	fmt.Printf("Playing %d games on %d workers...\n", *games, *workers)

	type result struct {
		players  [2]string
		winnerID *string
		err      error
	}

	jobs := make(chan [2]string)
	results := make(chan result)

	var wg sync.WaitGroup
	for w := 0; w < *workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for pair := range jobs {
				winner, err := playGame(client, pair[0], pair[1])
				results <- result{players: pair, winnerID: winner, err: err}
			}
		}()
	}

	go func() {
		for i := 0; i < *games; i++ {
			a := rand.Intn(len(userIDs))
			b := rand.Intn(len(userIDs) - 1)
			if b >= a {
				b++
			}
			jobs <- [2]string{userIDs[a], userIDs[b]}
		}
		close(jobs)
		wg.Wait()
		close(results)
	}()

	wins := make(map[string]int)
	played := make(map[string]int)
	failures := 0
	for res := range results {
		if res.err != nil {
			failures++
			fmt.Printf("  game failed: %v\n", res.err)
			continue
		}
		played[res.players[0]]++
		played[res.players[1]]++
		if res.winnerID != nil {
			wins[*res.winnerID]++
		}
	}

	fmt.Printf("Done: %d games, %d failures\n\n", *games, failures)

	printTopRatios(client, played, wins)
}

// playGame drives one match to completion with random valid moves, retrying
// on conflict by re-reading the view, the same way any well-behaved caller
// of the engine is expected to.
func playGame(client *APIClient, creator, joiner string) (*string, error) {
	matchID, err := client.CreateMatch(creator)
	if err != nil {
		return nil, err
	}
	if _, err := client.JoinMatch(matchID, joiner); err != nil {
		return nil, err
	}

	cells := make([][2]int, 0, 9)
	for row := 0; row < 3; row++ {
		for col := 0; col < 3; col++ {
			cells = append(cells, [2]int{row, col})
		}
	}
	rand.Shuffle(len(cells), func(i, j int) { cells[i], cells[j] = cells[j], cells[i] })

	for {
		view, err := client.GetMatch(matchID)
		if err != nil {
			return nil, err
		}
		if view.Status != "in_progress" {
			return view.WinnerID, nil
		}

		for _, cell := range cells {
			if view.Board[cell[0]][cell[1]] != nil {
				continue
			}
			_, err := client.SubmitMove(matchID, *view.NextPlayerID, cell[0], cell[1])
			if err == nil {
				break
			}
			if apiErr, ok := err.(*apiError); ok && apiErr.Retryable() {
				break // re-fetch and try again
			}
			return nil, err
		}
	}
}

func printTopRatios(client *APIClient, played, wins map[string]int) {
	type ratio struct {
		userID string
		value  float64
		wins   int
		games  int
	}

	ratios := make([]ratio, 0, len(played))
	for id, games := range played {
		ratios = append(ratios, ratio{
			userID: id,
			value:  float64(wins[id]) / float64(games),
			wins:   wins[id],
			games:  games,
		})
	}
	sort.Slice(ratios, func(i, j int) bool {
		if ratios[i].value != ratios[j].value {
			return ratios[i].value > ratios[j].value
		}
		return ratios[i].userID < ratios[j].userID
	})

	fmt.Println("Top 3 by win ratio (this run):")
	for i, r := range ratios {
		if i >= 3 {
			break
		}
		fmt.Printf("  %d. user %s  ratio=%.2f wins=%d games=%d\n", i+1, r.userID, r.value, r.wins, r.games)
	}

	entries, err := client.GetLeaderboard("wins")
	if err != nil {
		fmt.Printf("\nCould not fetch server leaderboard: %v\n", err)
		return
	}
	fmt.Println("\nServer leaderboard (wins, all time):")
	for i, e := range entries {
		fmt.Printf("  %d. user %s  wins=%d games=%d\n", i+1, e.UserID, e.Wins, e.Games)
	}
}

func leaderboardCmd(apiURL string, args []string) {
	fs := flag.NewFlagSet("leaderboard", flag.ExitOnError)
	metric := fs.String("metric", "wins", "Leaderboard metric (wins or efficiency)")
	fs.Parse(args)

	client := NewAPIClient(apiURL)
	entries, err := client.GetLeaderboard(*metric)
	if err != nil {
		fmt.Printf("Failed to fetch leaderboard: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Leaderboard (%s):\n", *metric)
	for i, e := range entries {
		fmt.Printf("  %d. user %s  value=%.2f wins=%d games=%d\n", i+1, e.UserID, e.Value, e.Wins, e.Games)
	}
}
