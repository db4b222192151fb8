// Package demo provides an in-memory fixture dataset: 12 users across
// three cities, 8 posts, a symmetric friendship graph, directional
// blocks, and likes. Used by the CLI, the seed command, and tests.
package demo

import (
	"time"

	"travelmate/internal/directory"
	"travelmate/internal/model"
)

// Snapshot builds the demo dataset with timestamps relative to now.
func Snapshot(now time.Time) *directory.Snapshot {
	snap := directory.NewSnapshot()

	day := 24 * time.Hour
	date := func(daysAhead int) string { return now.Add(time.Duration(daysAhead) * day).Format("2006-01-02") }

	users := []model.UserProfile{
		{
			ID: "user_1", DisplayName: "Priya Sharma", Age: 22, VerifiedStudent: true, AgeVerified: true,
			CurrentCity: "Toronto", DestinationCity: "Montreal",
			CulturalBackgrounds: []string{"Indian", "South Asian"},
			Languages:           []string{"English", "Hindi", "Punjabi"},
			Goals:               []string{"Friends", "Food buddies", "Exploring the city"},
			Bio:                 "Looking to explore Toronto and make friends who love good food!",
			CreatedAt:           now.Add(-30 * day), LastActiveAt: now.Add(-2 * time.Hour),
			PreferNearAge: true,
		},
		{
			ID: "user_2", DisplayName: "Marcus Chen", Age: 23, VerifiedStudent: true, AgeVerified: true,
			CurrentCity: "Vancouver", DestinationCity: "Toronto",
			CulturalBackgrounds: []string{"Taiwanese", "East Asian"},
			Languages:           []string{"English", "Mandarin"},
			Goals:               []string{"Study pals", "Food buddies", "Friends"},
			Bio:                 "CS student from Taiwan. Down for study sessions and late-night bubble tea runs!",
			CreatedAt:           now.Add(-60 * day), LastActiveAt: now.Add(-5 * time.Hour),
		},
		{
			ID: "user_3", DisplayName: "Fatima Al-Rashid", Age: 24, VerifiedStudent: true, AgeVerified: true,
			CurrentCity:         "Montreal",
			CulturalBackgrounds: []string{"Arab", "Middle Eastern"},
			Languages:           []string{"English", "Arabic", "French", "Persian"},
			Goals:               []string{"Friends", "Exploring the city", "Events"},
			Bio:                 "New to Montreal! Love coffee shops, art galleries, and deep conversations.",
			CreatedAt:           now.Add(-45 * day), LastActiveAt: now.Add(-1 * time.Hour),
		},
		{
			ID: "user_4", DisplayName: "Diego Santos", Age: 25, VerifiedStudent: true, AgeVerified: true,
			CurrentCity:         "Toronto",
			CulturalBackgrounds: []string{"Brazilian", "Latin American"},
			Languages:           []string{"Portuguese", "English", "Spanish"},
			Goals:               []string{"Gym", "Friends", "Exploring the city"},
			Bio:                 "Brazilian exchange student looking for gym buddies and weekend adventures!",
			CreatedAt:           now.Add(-20 * day), LastActiveAt: now.Add(-1 * day),
		},
		{
			ID: "user_5", DisplayName: "Amara Okonkwo", Age: 26, VerifiedStudent: true, AgeVerified: true,
			CurrentCity: "Toronto", DestinationCity: "Vancouver",
			CulturalBackgrounds: []string{"Nigerian", "West African"},
			Languages:           []string{"English", "Igbo", "Yoruba"},
			Goals:               []string{"Friends", "Food buddies", "Events"},
			Bio:                 "Nigerian grad student. Always up for trying new restaurants and cultural events.",
			CreatedAt:           now.Add(-90 * day), LastActiveAt: now.Add(-12 * time.Hour),
		},
		{
			ID: "user_6", DisplayName: "Yuki Tanaka", Age: 21, VerifiedStudent: true, AgeVerified: true,
			CurrentCity:         "Vancouver",
			CulturalBackgrounds: []string{"Japanese", "East Asian"},
			Languages:           []string{"Japanese", "English"},
			Goals:               []string{"Friends", "Food buddies", "Exploring the city"},
			Bio:                 "Japanese exchange student. Lets grab ramen and explore hidden spots!",
			CreatedAt:           now.Add(-10 * day), LastActiveAt: now.Add(-3 * time.Hour), // new user
		},
		{
			ID: "user_7", DisplayName: "Alex Kim", Age: 24, VerifiedStudent: true, AgeVerified: true,
			CurrentCity:         "Toronto",
			CulturalBackgrounds: []string{"Korean", "East Asian"},
			Languages:           []string{"English", "Korean"},
			Goals:               []string{"Roommates", "Friends", "Study pals"},
			Bio:                 "Korean-Canadian looking for roommates and people to share apartment hunting tips.",
			CreatedAt:           now.Add(-100 * day), LastActiveAt: now.Add(-2 * day),
		},
		{
			ID: "user_8", DisplayName: "Sofia Martinez", Age: 22, VerifiedStudent: true, AgeVerified: true,
			CurrentCity: "Montreal", DestinationCity: "Toronto",
			CulturalBackgrounds: []string{"Mexican", "Latin American"},
			Languages:           []string{"Spanish", "English", "French"},
			Goals:               []string{"Friends", "Events", "Exploring the city"},
			Bio:                 "Mexican student passionate about dance, music, and making new connections!",
			CreatedAt:           now.Add(-50 * day), LastActiveAt: now.Add(-6 * time.Hour),
		},
		{
			ID: "user_9", DisplayName: "Hassan Javed", Age: 27, VerifiedStudent: true, AgeVerified: true,
			CurrentCity: "Toronto", DestinationCity: "Montreal",
			CulturalBackgrounds: []string{"Pakistani", "South Asian"},
			Languages:           []string{"English", "Urdu", "Punjabi", "Persian"},
			Goals:               []string{"Study pals", "Friends", "Events"},
			Bio:                 "Pakistani engineer. Coffee addict looking for study groups and cricket fans.",
			CreatedAt:           now.Add(-80 * day), LastActiveAt: now.Add(-8 * time.Hour),
			PreferNearAge:       true,
		},
		{
			ID: "user_10", DisplayName: "Linh Nguyen", Age: 23, VerifiedStudent: true, AgeVerified: true,
			CurrentCity:         "Toronto",
			CulturalBackgrounds: []string{"Vietnamese", "Southeast Asian"},
			Languages:           []string{"Vietnamese", "English"},
			Goals:               []string{"Friends", "Food buddies", "Exploring the city"},
			Bio:                 "Vietnamese student new to Canada. Would love to find cooking partners!",
			CreatedAt:           now.Add(-5 * day), LastActiveAt: now.Add(-30 * time.Minute), // new user
		},
		{
			ID: "user_11", DisplayName: "Ibrahim Diallo", Age: 25, VerifiedStudent: true, AgeVerified: true,
			CurrentCity:         "Montreal",
			CulturalBackgrounds: []string{"Senegalese", "West African"},
			Languages:           []string{"French", "English", "Wolof"},
			Goals:               []string{"Friends", "Gym", "Study pals"},
			Bio:                 "Senegalese student passionate about tech and basketball. Lets connect!",
			CreatedAt:           now.Add(-70 * day), LastActiveAt: now.Add(-1 * day),
		},
		{
			ID: "user_12", DisplayName: "Zara Patel", Age: 24, VerifiedStudent: true, AgeVerified: true,
			CurrentCity: "Vancouver", DestinationCity: "Toronto",
			CulturalBackgrounds: []string{"Indian", "British", "South Asian"},
			Languages:           []string{"English", "Gujarati", "Hindi", "Persian"},
			Goals:               []string{"Friends", "Food buddies", "Study pals"},
			Bio:                 "British-Indian grad student. Chai enthusiast seeking fellow bookworms and cafe hoppers.",
			CreatedAt:           now.Add(-40 * day), LastActiveAt: now.Add(-4 * time.Hour),
		},
	}
	for _, u := range users {
		snap.AddUser(u)
	}

	posts := []model.Post{
		{
			ID: "post_1", AuthorID: "user_1",
			Text:      "Hey! Ill be in Montreal from Feb 2 to Feb 12. Looking for friends to explore the city, message me!",
			CreatedAt: now.Add(-2 * time.Hour), StartDate: date(15), EndDate: date(25),
			CoarseLocation: "Downtown Montreal", Tags: []string{"Friends", "Exploring the city"},
		},
		{
			ID: "post_2", AuthorID: "user_3",
			Text:      "Anyone want to check out the new art exhibit at the museum this weekend? Would love some company!",
			CreatedAt: now.Add(-5 * time.Hour),
			CoarseLocation: "Montreal arts district", Tags: []string{"Events", "Friends"},
		},
		{
			ID: "post_3", AuthorID: "user_4",
			Text:      "Looking for a gym buddy in the downtown area. I usually go in the mornings around 7am. Lets motivate each other!",
			CreatedAt: now.Add(-1 * day),
			CoarseLocation: "Downtown Toronto", Tags: []string{"Gym", "Friends"},
		},
		{
			ID: "post_4", AuthorID: "user_8",
			Text:      "Organizing a salsa night next Friday! If you love dancing or want to learn, come join us. All levels welcome!",
			CreatedAt: now.Add(-1 * day), StartDate: date(7), EndDate: date(7),
			CoarseLocation: "Montreal downtown", Tags: []string{"Events", "Friends"},
		},
		{
			ID: "post_5", AuthorID: "user_6",
			Text:      "Found the best ramen spot near campus! Anyone want to grab lunch tomorrow? DM me!",
			CreatedAt: now.Add(-2 * day),
			CoarseLocation: "Near UBC campus", Tags: []string{"Food buddies", "Friends"},
		},
		{
			ID: "post_6", AuthorID: "user_2",
			Text:      "Study group forming for CPSC 320. Looking for 2-3 more people. We meet Tuesdays and Thursdays at the library.",
			CreatedAt: now.Add(-2 * day),
			CoarseLocation: "UBC Library area", Tags: []string{"Study pals"},
		},
		{
			ID: "post_7", AuthorID: "user_7",
			Text:      "Apartment hunting in North York. Anyone else looking for a place? Maybe we can be roommates! Budget: $800-1000/month",
			CreatedAt: now.Add(-3 * day),
			CoarseLocation: "North York area", Tags: []string{"Roommates"},
		},
		{
			ID: "post_8", AuthorID: "user_9",
			Text:      "Cricket match this Sunday at the park! We need 2 more players. All skill levels welcome, just come have fun!",
			CreatedAt: now.Add(-3 * day), StartDate: date(2), EndDate: date(2),
			CoarseLocation: "Toronto East", Tags: []string{"Events", "Friends"},
		},
	}
	for _, p := range posts {
		snap.AddPost(p)
	}

	friendships := [][2]string{
		{"user_1", "user_4"}, {"user_1", "user_5"}, {"user_1", "user_9"},
		{"user_2", "user_6"}, {"user_2", "user_12"},
		{"user_3", "user_8"}, {"user_3", "user_11"},
		{"user_4", "user_7"}, {"user_4", "user_10"},
		{"user_5", "user_10"},
		{"user_6", "user_12"},
		{"user_7", "user_10"},
	}
	for _, f := range friendships {
		snap.AddFriendship(f[0], f[1])
	}

	snap.AddBlock("user_2", "user_9")
	snap.AddBlock("user_7", "user_11")

	likes := map[string][]string{
		"post_1": {"user_4", "user_5", "user_9"},
		"post_2": {"user_8", "user_11", "user_1"},
		"post_3": {"user_1", "user_7", "user_10"},
		"post_4": {"user_3", "user_11", "user_1", "user_5"},
		"post_5": {"user_2", "user_12"},
		"post_6": {"user_6", "user_12", "user_7"},
		"post_7": {"user_4", "user_10", "user_1"},
		"post_8": {"user_1", "user_4", "user_5"},
	}
	for postID, likers := range likes {
		for _, uid := range likers {
			snap.AddLike(postID, uid)
		}
	}

	return snap
}
