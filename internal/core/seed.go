package core

import (
	"time"

	"github.com/siahsang/conduit/models"
)

// DemoHandle is the handle of the demo profile.
const DemoHandle = "johndoe"

const defaultImage = "https://via.placeholder.com/150"

// FixedAuthor is stamped on articles created without an author.
var FixedAuthor = models.Profile{
	Username: "mockuser",
	Bio:      "Mock User Bio",
	Image:    defaultImage,
}

func SeedArticles() []*models.Article {
	now := time.Now().UTC()
	return []*models.Article{
		{
			Slug:           "article-1",
			Title:          "Introduction to Angular",
			Description:    "A beginner's guide to Angular development.",
			Body:           "This article covers the basics of Angular, including components, modules, and services.",
			TagList:        []string{"Angular", "Frontend"},
			CreatedAt:      now,
			UpdatedAt:      now,
			FavoritesCount: 10,
			Author: models.Profile{
				Username: "johndoe",
				Bio:      "Frontend developer",
				Image:    defaultImage,
			},
		},
		{
			Slug:           "article-2",
			Title:          "Advanced TypeScript",
			Description:    "Master TypeScript with advanced concepts.",
			Body:           "This article delves deep into TypeScript, including generics, decorators, and type inference.",
			TagList:        []string{"TypeScript", "Backend"},
			CreatedAt:      now,
			UpdatedAt:      now,
			Favorited:      true,
			FavoritesCount: 25,
			Author: models.Profile{
				Username:  "janedoe",
				Bio:       "Backend engineer",
				Image:     defaultImage,
				Following: true,
			},
		},
	}
}

// SeedProfiles holds the demo profile and the profile of the second seed
// author. Article authors with a profile take their follow state from it.
func SeedProfiles() *ProfileStore {
	return NewProfileStore(ProfileEntry{
		Handle: "janedoe",
		Profile: &models.Profile{
			Username:  "janedoe",
			Bio:       "Backend engineer",
			Image:     defaultImage,
			Following: true,
		},
	}, ProfileEntry{
		Handle: DemoHandle,
		Profile: &models.Profile{
			Username:  "John_doe",
			Bio:       "John Doe's bio",
			Image:     "https://media.istockphoto.com/id/2151669184/vector/vector-flat-illustration-in-grayscale-avatar-user-profile-person-icon-gender-neutral.jpg",
			Following: true,
		},
	})
}
