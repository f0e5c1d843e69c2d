package cmd

import (
	"fmt"

	"github.com/lepinkainen/readlog/internal/session"
	"github.com/lepinkainen/readlog/internal/tui"
)

var confirm = tui.Confirm

// LogoutCmd wipes the reading log
type LogoutCmd struct {
	Yes bool `short:"y" help:"Do not ask for confirmation"`
}

func (c *LogoutCmd) Run() error {
	return withSession(func(sess *session.Session) error {
		confirmed := c.Yes
		if !confirmed {
			ok, err := confirm(fmt.Sprintf("Delete %s's reading log and all %d books?", sess.User().Name, len(sess.Books())))
			if err != nil {
				return err
			}
			confirmed = ok
		}

		res, err := sess.Dispatch(session.Logout{Confirmed: confirmed})
		if err != nil {
			return err
		}
		if !res.LoggedOut {
			_, err = fmt.Fprintln(stdout, "Nothing deleted.")
			return err
		}
		_, err = fmt.Fprintln(stdout, "All reading log data deleted.")
		return err
	})
}
