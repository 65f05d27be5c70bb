package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/goliatone/go-member-cache/internal/config"
	"github.com/goliatone/go-member-cache/internal/logging"
	"github.com/goliatone/go-member-cache/member"
	"github.com/goliatone/go-member-cache/pkg/di"
	"github.com/goliatone/go-member-cache/service"
)

func memberCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "member",
		Short: "Manage members",
	}
	cmd.AddCommand(
		memberJoinCmd(),
		memberGetCmd(),
		memberUpdateCmd(),
		memberRemoveCmd(),
	)
	return cmd
}

func memberJoinCmd() *cobra.Command {
	var name string
	cmd := &cobra.Command{
		Use:   "join",
		Short: "Create a member",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withService(cmd.Context(), func(svc *service.MemberService) error {
				m, err := svc.JoinMember(cmd.Context(), &member.Member{Name: name})
				if err != nil {
					return err
				}
				return printJSON(cmd.OutOrStdout(), m)
			})
		},
	}
	cmd.Flags().StringVar(&name, "name", "", "Member name")
	_ = cmd.MarkFlagRequired("name")
	return cmd
}

func memberGetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "get <id>",
		Short: "Show a member",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			return withService(cmd.Context(), func(svc *service.MemberService) error {
				m, err := svc.GetMemberInfo(cmd.Context(), id)
				if err != nil {
					return err
				}
				return printJSON(cmd.OutOrStdout(), m)
			})
		},
	}
}

func memberUpdateCmd() *cobra.Command {
	var name string
	cmd := &cobra.Command{
		Use:   "update <id>",
		Short: "Rename a member",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			return withService(cmd.Context(), func(svc *service.MemberService) error {
				m, err := svc.UpdateMember(cmd.Context(), &member.Member{Name: name}, id)
				if err != nil {
					return err
				}
				return printJSON(cmd.OutOrStdout(), m)
			})
		},
	}
	cmd.Flags().StringVar(&name, "name", "", "New member name")
	_ = cmd.MarkFlagRequired("name")
	return cmd
}

func memberRemoveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "remove <id>",
		Short: "Delete a member",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			return withService(cmd.Context(), func(svc *service.MemberService) error {
				if err := svc.RemoveMember(cmd.Context(), id); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "member %d removed\n", id)
				return nil
			})
		},
	}
}

// withService builds a container from the environment for one command.
func withService(ctx context.Context, fn func(*service.MemberService) error) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	logging.InitStructured(cfg.Log.Format, cfg.Log.Level)

	container, err := di.NewContainer(ctx, cfg)
	if err != nil {
		return err
	}
	defer container.Close()

	return fn(container.Service())
}

func parseID(raw string) (int64, error) {
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid member id %q: %w", raw, err)
	}
	return id, nil
}

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
