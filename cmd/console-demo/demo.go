package main

import (
	"fmt"
	"log/slog"

	"github.com/lixenwraith/textconsole/console"
)

const maxLog = 8

// Layout rows
const (
	rowTitle    = 0
	rowNamed    = 2
	rowCustom   = 4
	rowLogTitle = 6
	rowLog      = 7
)

var namedColors = []console.Color{
	console.Black, console.Red, console.Green, console.Yellow,
	console.Blue, console.Magenta, console.Cyan, console.White,
}

// demo shows the canvas features and echoes recent input
type demo struct {
	title  string
	quit   console.Update
	logger *slog.Logger

	entries []string
}

func newDemo(title string, quit console.Update, logger *slog.Logger) *demo {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &demo{title: title, quit: quit, logger: logger}
}

// record appends u to the event log, dropping the oldest entry when full
func (d *demo) record(u console.Update) {
	if len(d.entries) >= maxLog {
		copy(d.entries, d.entries[1:])
		d.entries = d.entries[:maxLog-1]
	}
	d.entries = append(d.entries, u.String())
}

// run renders, then redraws after every update until quit or the channel closes
func (d *demo) run(c console.Canvas, events <-chan console.Update) error {
	if err := d.render(c); err != nil {
		return err
	}
	for u := range events {
		if u == d.quit {
			d.logger.Info("quit requested", "update", u.String())
			return nil
		}
		d.logger.Debug("update", "update", u.String())
		d.record(u)
		if err := d.render(c); err != nil {
			return err
		}
	}
	d.logger.Info("input closed")
	return nil
}

func (d *demo) render(c console.Canvas) error {
	c.Clear()

	err := console.WithState(c, func(c console.Canvas) error {
		c.Set(console.Bold)
		c.Set(console.Underline)
		console.Draw(c, 1, rowTitle, d.title)
		return nil
	})
	if err != nil {
		return err
	}

	x := 1
	for _, col := range namedColors {
		err := console.WithState(c, func(c console.Canvas) error {
			c.Set(console.BackgroundColor(col))
			if col == console.Black || col == console.Blue {
				c.Set(console.TextColor(console.White))
			} else {
				c.Set(console.TextColor(console.Black))
			}
			console.Draw(c, x, rowNamed, " "+col.String()+" ")
			return nil
		})
		if err != nil {
			return err
		}
		x += len(col.String()) + 3
	}

	if err := d.renderGradient(c); err != nil {
		return err
	}

	scope := console.Enter(c)
	c.Set(console.Underline)
	console.Draw(c, 1, rowLogTitle, "Recent input")
	if err := scope.Close(); err != nil {
		return err
	}
	for i, entry := range d.entries {
		console.Draw(c, 3, rowLog+i, entry)
	}

	status := fmt.Sprintf("%dx%d  press %s to quit", c.Width(), c.Height(), bindingLabel(d.quit))
	err = console.WithState(c, func(c console.Canvas) error {
		c.Set(console.TextColor(console.Cyan))
		console.Draw(c, 1, c.Height()-1, status)
		return nil
	})
	if err != nil {
		return err
	}

	c.Present()
	return nil
}

// renderGradient draws a custom color ramp, or a notice when the canvas
// would only approximate it
func (d *demo) renderGradient(c console.Canvas) error {
	if err := console.CheckColor(c, console.BackgroundColor(console.Custom(0, 0, 0))); err != nil {
		return console.WithState(c, func(c console.Canvas) error {
			c.Set(console.TextColor(console.Yellow))
			console.Draw(c, 1, rowCustom, "custom colors not supported")
			return nil
		})
	}

	const steps = 32
	for i := 0; i < steps; i++ {
		v := uint8(i * 255 / (steps - 1))
		err := console.WithState(c, func(c console.Canvas) error {
			c.Set(console.BackgroundColor(console.Custom(v, 64, 255-v)))
			c.DrawChar(1+i, rowCustom, ' ')
			return nil
		})
		if err != nil {
			return err
		}
	}
	return nil
}

func bindingLabel(u console.Update) string {
	if u.Kind == console.UpdateSpecial {
		return u.Key.String()
	}
	return string(u.Char)
}
