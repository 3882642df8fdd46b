package mockapi

import (
	"fmt"
	"time"
)

// Demo credentials for the seeded account the --mock mode signs in with.
const (
	DemoEmail    = "demo@boardterm.dev"
	DemoPassword = "demo1234"
)

var seedTitles = []string{
	"Welcome to the board",
	"How do you structure a Go monorepo?",
	"Terminal color themes worth trying",
	"Weekly show and tell",
	"Anyone migrating from REST to gRPC?",
	"Favorite keyboard shortcuts",
	"Reading list for distributed systems",
	"Bug: list jumps after refresh",
	"Tips for writing better commit messages",
	"What are you building this month?",
	"Lunch spot recommendations",
	"Notice: maintenance window on Sunday",
}

var seedComments = []string{
	"Great write-up, thanks for sharing!",
	"I ran into the same thing last week.",
	"Could you post an example?",
	"+1, would love to see more of this.",
	"Have you tried the other approach?",
}

// Seed fills an empty store with demo users, categories, posts and comments.
// Timestamps are spread back from the store clock so every sort order differs.
func Seed(s *Store) error {
	demo, err := s.AddUser(DemoEmail, "demo", DemoPassword)
	if err != nil {
		return err
	}
	alice, err := s.AddUser("alice@boardterm.dev", "alice", "alice1234")
	if err != nil {
		return err
	}
	bob, err := s.AddUser("bob@boardterm.dev", "bob", "bob12345")
	if err != nil {
		return err
	}
	users := []int{demo, alice, bob}

	cats := []int{
		s.AddCategory("Free talk"),
		s.AddCategory("Questions"),
		s.AddCategory("Tips"),
		s.AddCategory("Notices"),
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	base := s.now()
	const total = 36
	for i := range total {
		title := seedTitles[i%len(seedTitles)]
		if i >= len(seedTitles) {
			title = fmt.Sprintf("%s (#%d)", title, i/len(seedTitles)+1)
		}
		created := base.Add(-time.Duration(total-i) * 3 * time.Hour)
		s.nextPost++
		p := &post{
			id:         s.nextPost,
			authorID:   users[i%len(users)],
			categoryID: cats[i%len(cats)],
			title:      title,
			content:    seedContent(i),
			views:      (i * 7) % 23,
			likes:      map[int]struct{}{},
			createdAt:  created,
			updatedAt:  created,
		}
		for j, u := range users {
			if (i+j)%3 == 0 {
				p.likes[u] = struct{}{}
			}
		}
		s.posts[p.id] = p

		for j := range i % 4 {
			s.nextComment++
			at := created.Add(time.Duration(j+1) * 10 * time.Minute)
			s.comments[s.nextComment] = &comment{
				id:        s.nextComment,
				postID:    p.id,
				authorID:  users[(i+j+1)%len(users)],
				content:   seedComments[(i+j)%len(seedComments)],
				createdAt: at,
				updatedAt: at,
			}
		}
	}
	return nil
}

func seedContent(i int) string {
	return fmt.Sprintf(`## Post %d

This is **seeded** content with a little *markdown*:

- point one
- point two

> quoted text from @alice

`+"`inline code`"+` and a [link](https://example.com/%d).`, i+1, i+1)
}
