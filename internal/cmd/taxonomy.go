package cmd

import (
	"context"

	"github.com/RicardoYam/Meet/pkg/api"
	"github.com/RicardoYam/Meet/pkg/prompter"
	"github.com/RicardoYam/Meet/pkg/service"
	"github.com/RicardoYam/Meet/pkg/session"
	"github.com/spf13/cobra"
)

// taxonomyOps are the service calls behind one of the label commands
type taxonomyOps struct {
	list   func(svc *service.TaxonomyService, ctx context.Context) error
	create func(svc *service.TaxonomyService, ctx context.Context, sess *session.Session, req api.TaxonomyRequest) error
	follow func(svc *service.TaxonomyService, ctx context.Context, sess *session.Session, id int64, follow bool) error
}

var categoryCmd = newTaxonomyCmd("category", "categories", taxonomyOps{
	list:   (*service.TaxonomyService).ListCategories,
	create: (*service.TaxonomyService).CreateCategory,
	follow: (*service.TaxonomyService).SetCategoryFollow,
})

var tagCmd = newTaxonomyCmd("tag", "tags", taxonomyOps{
	list:   (*service.TaxonomyService).ListTags,
	create: (*service.TaxonomyService).CreateTag,
	follow: (*service.TaxonomyService).SetTagFollow,
})

func newTaxonomyCmd(noun, plural string, ops taxonomyOps) *cobra.Command {
	root := &cobra.Command{
		Use:   noun,
		Short: "Browse and follow " + plural,
	}

	root.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List all " + plural,
		RunE: func(cmd *cobra.Command, args []string) error {
			return ops.list(service.NewTaxonomyService(apiClient()), cmd.Context())
		},
	})

	var title, description string
	create := &cobra.Command{
		Use:   "create",
		Short: "Create a " + noun,
		RunE: func(cmd *cobra.Command, args []string) error {
			p := prompter.Default()
			var err error
			if title == "" {
				if title, err = p.String("Title: "); err != nil {
					return err
				}
			}
			if description == "" {
				if description, err = p.String("Description: "); err != nil {
					return err
				}
			}
			req := api.TaxonomyRequest{Title: title, Description: description}
			return withSession(cmd, func(sess *session.Session) error {
				return ops.create(service.NewTaxonomyService(apiClient()), cmd.Context(), sess, req)
			})
		},
	}
	create.Flags().StringVarP(&title, "title", "t", "", "Title")
	create.Flags().StringVarP(&description, "description", "d", "", "Description")
	root.AddCommand(create)

	for _, follow := range []bool{true, false} {
		use, short := "follow", "Follow a "+noun
		if !follow {
			use, short = "unfollow", "Unfollow a "+noun
		}
		root.AddCommand(&cobra.Command{
			Use:   use + " <id>",
			Short: short,
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				id, err := parseID(args[0], noun+"-id")
				if err != nil {
					return err
				}
				return withSession(cmd, func(sess *session.Session) error {
					return ops.follow(service.NewTaxonomyService(apiClient()), cmd.Context(), sess, id, follow)
				})
			},
		})
	}
	return root
}
