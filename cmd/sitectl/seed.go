package main

import (
	"context"
	"fmt"
	"io"

	"github.com/advisorsite/internal/db"
	"github.com/advisorsite/internal/defaults"
	"github.com/advisorsite/internal/service"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// NewSeedCommand creates the seed command
func NewSeedCommand() *cobra.Command {
	var samples bool

	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Store the default content so it can be edited in the admin",
		Long: `Seed copies the default content (built in, or DEFAULT_CONTENT_PATH) into
empty sections: a published hero section, the published slides, the about
and contact sections and the company settings. Sections that already hold
data are left alone. With --samples it also adds example services, team
members, credentials and clients.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, gdb, err := openDatabase(cmd)
			if err != nil {
				return err
			}
			defer db.Close(gdb)

			content, err := defaults.NewProvider(cfg.DefaultContentPath)
			if err != nil {
				return err
			}
			return seedSite(cmd.Context(), gdb, content, samples, cmd.OutOrStdout())
		},
	}

	cmd.Flags().BoolVar(&samples, "samples", false, "also add example services, team members, credentials and clients")
	return cmd
}

// seedStep 返回 false 表示该栏目已有数据而被跳过。
type seedStep struct {
	name string
	run  func(context.Context, *service.Site, defaults.Content) (bool, error)
}

func seedSite(ctx context.Context, gdb *gorm.DB, content *defaults.Provider, samples bool, out io.Writer) error {
	if ctx == nil {
		ctx = context.Background()
	}
	site := service.NewSite(gdb, content, nil, zap.NewNop())
	if err := site.LoadAll(ctx); err != nil {
		return fmt.Errorf("load existing content: %w", err)
	}

	fmt.Fprintln(out, "开始写入默认内容...")
	defaultsCopy := content.Current()

	steps := []seedStep{
		{"hero section", seedHero},
		{"slides", seedSlides},
		{"about", seedAbout},
		{"contact", seedContact},
		{"company settings", seedSettings},
	}
	if samples {
		steps = append(steps, []seedStep{
			{"services", seedOfferings},
			{"team", seedTeam},
			{"credentials", seedCredentials},
			{"clients", seedClients},
		}...)
	}

	for _, step := range steps {
		seeded, err := step.run(ctx, site, defaultsCopy)
		if err != nil {
			return fmt.Errorf("seed %s: %w", step.name, err)
		}
		if seeded {
			fmt.Fprintf(out, "✅ %s\n", step.name)
		} else {
			fmt.Fprintf(out, "%s already has data, skipped\n", step.name)
		}
	}

	fmt.Fprintln(out, "默认内容写入完成！")
	return nil
}

func seedHero(ctx context.Context, site *service.Site, content defaults.Content) (bool, error) {
	if len(site.Hero.Snapshot()) > 0 {
		return false, nil
	}
	hero := content.Hero
	colors := hero.Colors
	created, err := site.Hero.Create(ctx, service.HeroInput{
		Title:       &hero.Title,
		Subtitle:    &hero.Subtitle,
		Description: &hero.Description,
		TrustedText: &hero.TrustedText,
		Colors:      &colors,
	})
	if err != nil {
		return false, err
	}
	_, err = site.Hero.Publish(ctx, created.ID)
	return err == nil, err
}

func seedSlides(ctx context.Context, site *service.Site, content defaults.Content) (bool, error) {
	if len(site.Slides.Snapshot()) > 0 {
		return false, nil
	}
	for _, slide := range content.Slides {
		slide := slide
		created, err := site.Slides.Create(ctx, service.SlideInput{
			Title:       &slide.Title,
			Description: &slide.Description,
			ImageURL:    &slide.ImageURL,
		})
		if err != nil {
			return false, err
		}
		if _, err := site.Slides.Publish(ctx, created.ID); err != nil {
			return false, err
		}
	}
	return true, nil
}

func seedAbout(ctx context.Context, site *service.Site, content defaults.Content) (bool, error) {
	if _, ok := site.About.Current(); ok {
		return false, nil
	}
	about := content.About
	_, err := site.About.Save(ctx, service.AboutInput{
		Title:    &about.Title,
		Subtitle: &about.Subtitle,
		Body:     &about.Body,
		Mission:  &about.Mission,
		Vision:   &about.Vision,
	})
	return err == nil, err
}

func seedContact(ctx context.Context, site *service.Site, content defaults.Content) (bool, error) {
	if _, ok := site.Contact.Current(); ok {
		return false, nil
	}
	contact := content.Contact
	_, err := site.Contact.Save(ctx, service.ContactInput{
		Title:       &contact.Title,
		Subtitle:    &contact.Subtitle,
		Email:       &contact.Email,
		Phone:       &contact.Phone,
		Address:     &contact.Address,
		OfficeHours: &contact.OfficeHours,
	})
	return err == nil, err
}

func seedSettings(ctx context.Context, site *service.Site, content defaults.Content) (bool, error) {
	if _, ok := site.Settings.Current(); ok {
		return false, nil
	}
	settings := content.Settings
	_, err := site.Settings.Save(ctx, service.SettingsInput{
		CompanyName:    settings.CompanyName,
		Tagline:        settings.Tagline,
		SEOTitle:       settings.SEOTitle,
		SEODescription: settings.SEODescription,
		SEOKeywords:    settings.SEOKeywords,
		Theme:          settings.Theme,
	})
	return err == nil, err
}

func strPtr(s string) *string {
	return &s
}

func intPtr(i int) *int {
	return &i
}

func seedOfferings(ctx context.Context, site *service.Site, _ defaults.Content) (bool, error) {
	if len(site.Offerings.Snapshot()) > 0 {
		return false, nil
	}
	offerings := []service.OfferingInput{
		{
			Title:       strPtr("Wealth management"),
			Description: strPtr("Goal-based portfolios reviewed every quarter."),
			Icon:        strPtr("chart-line"),
			Features:    []string{"Quarterly reviews", "Tax-aware rebalancing"},
		},
		{
			Title:       strPtr("Retirement planning"),
			Description: strPtr("Income plans that last as long as you do."),
			Icon:        strPtr("umbrella"),
			Features:    []string{"Drawdown modelling", "Pension consolidation"},
		},
		{
			Title:       strPtr("Business advisory"),
			Description: strPtr("Succession, exit and treasury planning for owners."),
			Icon:        strPtr("briefcase"),
		},
	}
	for _, input := range offerings {
		if _, err := site.Offerings.Create(ctx, input); err != nil {
			return false, err
		}
	}
	return true, nil
}

func seedTeam(ctx context.Context, site *service.Site, _ defaults.Content) (bool, error) {
	if len(site.Team.Snapshot()) > 0 {
		return false, nil
	}
	members := []service.TeamMemberInput{
		{Name: strPtr("Alex Morgan"), Position: strPtr("Managing Partner"), Bio: strPtr("Twenty years advising families and foundations.")},
		{Name: strPtr("Sam Patel"), Position: strPtr("Chief Investment Officer"), Bio: strPtr("Leads research and portfolio construction.")},
		{Name: strPtr("Jordan Lee"), Position: strPtr("Financial Planner"), Bio: strPtr("Specialises in retirement and estate planning.")},
	}
	for _, input := range members {
		if _, err := site.Team.Create(ctx, input); err != nil {
			return false, err
		}
	}
	return true, nil
}

func seedCredentials(ctx context.Context, site *service.Site, _ defaults.Content) (bool, error) {
	if len(site.Credentials.Snapshot()) > 0 {
		return false, nil
	}
	credentials := []service.CredentialInput{
		{Title: strPtr("Certified Financial Planner"), Issuer: strPtr("CFP Board"), Year: intPtr(2012)},
		{Title: strPtr("Chartered Financial Analyst"), Issuer: strPtr("CFA Institute"), Year: intPtr(2015)},
	}
	for _, input := range credentials {
		if _, err := site.Credentials.Create(ctx, input); err != nil {
			return false, err
		}
	}
	return true, nil
}

func seedClients(ctx context.Context, site *service.Site, _ defaults.Content) (bool, error) {
	if len(site.Clients.Snapshot()) > 0 {
		return false, nil
	}
	clients := []service.ClientInput{
		{Name: strPtr("Harbor Foundation"), Description: strPtr("Endowment advisory since 2016.")},
		{Name: strPtr("Northwind Holdings"), Description: strPtr("Treasury and succession planning.")},
	}
	for _, input := range clients {
		if _, err := site.Clients.Create(ctx, input); err != nil {
			return false, err
		}
	}
	return true, nil
}
