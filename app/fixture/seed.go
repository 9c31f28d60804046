package fixture

import "postify/app/models"

// SeedPosts returns the fixture's post collection, in serving order.
func SeedPosts() []models.Post {
	return []models.Post{
		{
			ID:    1,
			Title: "Understanding Mobile App Performance",
			Body:  "Mobile clients live and die by their rendering and data-fetch latency. Understanding where time goes can help optimize your app.",
		},
		{
			ID:    2,
			Title: "State Management Best Practices",
			Body:  "Choosing the right state management approach is crucial for scalable client applications. Consider your app complexity and team size.",
		},
		{
			ID:    3,
			Title: "Navigation Patterns in Mobile Apps",
			Body:  "Effective navigation is key to great UX. A small explicit state machine keeps complex navigation flows predictable.",
		},
		{
			ID:    4,
			Title: "Testing Client Components",
			Body:  "Writing tests for client components requires understanding your test tooling and how to stand in for remote services effectively.",
		},
	}
}

// SeedComments returns the fixture's comments keyed by post id. Post 4
// intentionally has a single comment and unknown posts have none.
func SeedComments() map[int][]models.Comment {
	return map[int][]models.Comment{
		1: {
			{
				ID:     101,
				PostID: 1,
				Name:   "John Doe",
				Email:  "john.doe@example.com",
				Body:   "Great article! The latency breakdown was very clear.",
			},
			{
				ID:     102,
				PostID: 1,
				Name:   "Jane Smith",
				Email:  "jane.smith@example.com",
				Body:   "I found the performance tips particularly helpful for my current project.",
			},
		},
		2: {
			{
				ID:     201,
				PostID: 2,
				Name:   "Bob Johnson",
				Email:  "bob.johnson@example.com",
				Body:   "A single owned store has been a game-changer for our state management needs.",
			},
		},
		3: {
			{
				ID:     301,
				PostID: 3,
				Name:   "Alice Williams",
				Email:  "alice.williams@example.com",
				Body:   "Navigation state machines are powerful but can be complex. This article helped clarify things.",
			},
			{
				ID:     302,
				PostID: 3,
				Name:   "Charlie Brown",
				Email:  "charlie.brown@example.com",
				Body:   "The navigation patterns section was exactly what I needed.",
			},
		},
		4: {
			{
				ID:     401,
				PostID: 4,
				Name:   "Diana Prince",
				Email:  "diana.prince@example.com",
				Body:   "Standing in for remote services can be tricky. Thanks for the insights!",
			},
		},
	}
}
