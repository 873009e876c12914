package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/mdobak/go-xerrors"
	"github.com/siahsang/conduit/internal/articlelist"
	"github.com/siahsang/conduit/internal/auth"
	"github.com/siahsang/conduit/internal/filter"
	"github.com/siahsang/conduit/internal/session"
	"github.com/siahsang/conduit/internal/utils/collectionutils"
	"github.com/siahsang/conduit/internal/utils/functional"
	"github.com/spf13/cobra"
)

const browseHelp = `commands:
  all | feed                   list every article or the followed authors' articles
  tag NAME | author NAME       narrow the list
  favorited NAME               only favorited articles
  page N                       go to page N
  fav SLUG | unfav SLUG        favorite or unfavorite an article
  profile NAME                 show a profile
  login EMAIL PASSWORD         sign in
  register NAME EMAIL PASSWORD create an account and sign in
  whoami | logout | help | quit (exit, q)`

var errQuit = xerrors.Message("quit")

var commandAliases = map[string]string{
	"exit":   "quit",
	"q":      "quit",
	"ls":     "all",
	"me":     "whoami",
	"signin": "login",
}

func newBrowseCommand(newApp func(*cobra.Command) (*application, error)) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "browse",
		Short: "Browse articles interactively with a persisted session",
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := newApp(cmd)
			if err != nil {
				return err
			}

			tokenPath := app.config.TokenFile
			if tokenPath == "" {
				if tokenPath, err = session.DefaultTokenPath(); err != nil {
					return err
				}
			}

			b := newBrowser(app, &session.FileTokenStore{Path: tokenPath}, cmd.OutOrStdout())
			defer b.Close()
			return b.run(cmd.Context(), cmd.InOrStdin())
		},
	}
	cmd.Flags().Int("limit", 0, "articles per page (overrides CONDUIT_PAGE_LIMIT)")
	return cmd
}

// browser is a line-oriented client of the article list and the session.
type browser struct {
	app    *application
	out    io.Writer
	holder *session.Holder
	list   *articlelist.Controller
	stops  []func()
}

func newBrowser(app *application, tokens session.TokenStore, out io.Writer) *browser {
	b := &browser{app: app, out: out}
	b.list = articlelist.New(app.logger, app.core, app.config.PageLimit)
	b.holder = session.NewHolder(app.logger, tokens, app.accounts, session.NavigatorFunc(func(string) {
		b.list.SetConfig(&filter.ArticleListConfig{Type: filter.TypeAll})
	}))

	first := true
	b.stops = append(b.stops, b.holder.CurrentUser().Subscribe(func(user *auth.User) {
		if first {
			first = false
			return
		}
		if user == nil {
			b.printf("Signed out\n")
			return
		}
		b.printf("Signed in as %s\n", user.Username)
	}))
	return b
}

func (b *browser) Close() {
	for _, stop := range b.stops {
		stop()
	}
	b.holder.Close()
	b.list.Close()
}

func (b *browser) run(ctx context.Context, in io.Reader) error {
	if _, err := b.holder.Restore(ctx); err != nil {
		b.printf("Stored session is no longer valid, signed out\n")
	}

	if err := b.showList(ctx, &filter.ArticleListConfig{Type: filter.TypeAll}); err != nil {
		return err
	}

	scanner := bufio.NewScanner(in)
	for {
		b.printf("> ")
		if !scanner.Scan() {
			break
		}

		fields := strings.Fields(scanner.Text())
		if len(fields) == 0 {
			continue
		}

		command := collectionutils.GetOrDefault(commandAliases, fields[0], fields[0])
		err := b.execute(ctx, command, fields[1:])
		if errors.Is(err, errQuit) {
			return nil
		}
		if err != nil {
			if ctx.Err() != nil {
				return nil
			}
			b.printf("error: %s\n", err)
		}
	}

	if err := scanner.Err(); err != nil {
		return xerrors.New(err)
	}
	return nil
}

func (b *browser) execute(ctx context.Context, command string, args []string) error {
	switch command {
	case "quit":
		return errQuit

	case "help":
		b.printf("%s\n", browseHelp)
		return nil

	case "all":
		return b.showList(ctx, &filter.ArticleListConfig{Type: filter.TypeAll})

	case "feed":
		if !b.holder.IsAuthenticated().Get() {
			return xerrors.New("sign in to see your feed")
		}
		return b.showList(ctx, &filter.ArticleListConfig{Type: filter.TypeFeed})

	case "tag", "author", "favorited":
		if len(args) != 1 {
			return xerrors.Newf("usage: %s NAME", command)
		}
		config := &filter.ArticleListConfig{Type: filter.TypeAll}
		switch command {
		case "tag":
			config.Criteria.Tag = args[0]
		case "author":
			config.Criteria.Author = args[0]
		default:
			config.Criteria.Favorited = args[0]
		}
		return b.showList(ctx, config)

	case "page":
		if len(args) != 1 {
			return xerrors.New("usage: page N")
		}
		n, err := strconv.Atoi(args[0])
		if err != nil || n < 1 {
			return xerrors.Newf("page must be a positive integer, got %q", args[0])
		}
		b.list.SetPageTo(n)
		return b.render(ctx)

	case "fav", "unfav":
		if len(args) != 1 {
			return xerrors.Newf("usage: %s SLUG", command)
		}
		if !b.holder.IsAuthenticated().Get() {
			return xerrors.Newf("sign in to %s articles", command)
		}
		toggle := b.app.core.FavoriteArticle
		if command == "unfav" {
			toggle = b.app.core.UnfavoriteArticle
		}
		article, err := toggle(ctx, args[0])
		if err != nil {
			return err
		}
		b.printf("%s has %d favorites\n", article.Slug, article.FavoritesCount)
		b.list.SetPageTo(b.list.CurrentPage().Get())
		return b.render(ctx)

	case "profile":
		if len(args) != 1 {
			return xerrors.New("usage: profile NAME")
		}
		var viewer string
		if user := b.holder.CurrentUser().Get(); user != nil {
			viewer = user.Username
		}
		view, err := b.app.core.LookupProfile(ctx, args[0], viewer)
		if err != nil {
			return err
		}
		b.printf("%s  following=%t  you=%t\n  %s\n", view.Profile.Username, view.Profile.Following, view.IsUser, view.Profile.Bio)
		return nil

	case "login":
		if len(args) != 2 {
			return xerrors.New("usage: login EMAIL PASSWORD")
		}
		_, err := b.holder.Login(ctx, auth.Credentials{Email: args[0], Password: args[1]})
		return err

	case "register":
		if len(args) != 3 {
			return xerrors.New("usage: register NAME EMAIL PASSWORD")
		}
		_, err := b.holder.Register(ctx, auth.Registration{Username: args[0], Email: args[1], Password: args[2]})
		return err

	case "logout":
		if err := b.holder.Logout(); err != nil {
			return err
		}
		return b.render(ctx)

	case "whoami":
		if user := b.holder.CurrentUser().Get(); user != nil {
			b.printf("%s <%s>\n", user.Username, user.Email)
		} else {
			b.printf("not signed in\n")
		}
		return nil

	default:
		return xerrors.Newf("unknown command %q, try help", command)
	}
}

func (b *browser) showList(ctx context.Context, config *filter.ArticleListConfig) error {
	b.list.SetConfig(config)
	return b.render(ctx)
}

func (b *browser) render(ctx context.Context) error {
	if err := b.list.Wait(ctx); err != nil {
		return err
	}

	state := b.list.Loading().Get()
	if state == articlelist.LoadStateFailed {
		return b.list.Err().Get()
	}

	articles := b.list.Articles().Get()
	if len(articles) == 0 {
		b.printf("No articles are here... yet.\n")
	}
	for _, article := range articles {
		b.printf("  %-20s %s by %s, %d favorites [%s]\n",
			article.Slug, article.Title, article.Author.Username, article.FavoritesCount,
			strings.Join(article.TagList, ", "))
	}

	current := b.list.CurrentPage().Get()
	pages := functional.Map(b.list.TotalPages().Get(), func(n int) string {
		if n == current {
			return fmt.Sprintf("[%d]", n)
		}
		return strconv.Itoa(n)
	})
	if len(pages) > 0 {
		b.printf("pages: %s\n", strings.Join(pages, " "))
	}
	return nil
}

func (b *browser) printf(format string, args ...any) {
	fmt.Fprintf(b.out, format, args...)
}
