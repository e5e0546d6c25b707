package posts

import (
	"fmt"

	"github.com/crucial707/blog-api/cmd/cli/client"
	"github.com/crucial707/blog-api/cmd/cli/output"
	"github.com/crucial707/blog-api/internal/models"
	"github.com/spf13/cobra"
)

// ==========================
// Init Posts
// ==========================
func InitPosts(rootCmd *cobra.Command) {
	postsCmd := &cobra.Command{
		Use:   "posts",
		Short: "Read and manage posts",
	}

	postsCmd.AddCommand(
		listPostsCmd(),
		getPostCmd(),
		createPostCmd(),
		updatePostCmd(),
		deletePostCmd(),
		likePostCmd(),
		commentPostCmd(),
	)

	rootCmd.AddCommand(postsCmd)
}

// ==========================
// LIST
// ==========================
func listPostsCmd() *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List posts, newest first",
		RunE: func(cmd *cobra.Command, args []string) error {
			var posts []models.Post
			if err := client.Call("GET", "/posts", false, nil, &posts); err != nil {
				return err
			}
			if asJSON {
				return output.PrintJSON(cmd.OutOrStdout(), posts)
			}

			rows := make([][]interface{}, 0, len(posts))
			for _, p := range posts {
				rows = append(rows, []interface{}{p.ID, p.Title, p.AuthorName, len(p.Likes), len(p.Comments), output.Millis(p.CreatedAt)})
			}
			output.RenderTable(cmd.OutOrStdout(), []string{"ID", "Title", "Author", "Likes", "Comments", "Created"}, rows)
			return nil
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "print raw JSON")
	return cmd
}

// ==========================
// GET
// ==========================
func getPostCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "get [id]",
		Short: "Show a post with its comments",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var p models.Post
			if err := client.Call("GET", "/posts/"+args[0], false, nil, &p); err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "%s\nby %s, %s, %d likes\n\n%s\n", p.Title, p.AuthorName, output.Millis(p.CreatedAt), len(p.Likes), p.Content)
			if len(p.Comments) > 0 {
				rows := make([][]interface{}, 0, len(p.Comments))
				for _, c := range p.Comments {
					rows = append(rows, []interface{}{c.Username, c.Text, output.Millis(c.CreatedAt)})
				}
				fmt.Fprintln(out)
				output.RenderTable(out, []string{"User", "Comment", "Created"}, rows)
			}
			return nil
		},
	}
}

// ==========================
// CREATE
// ==========================
func createPostCmd() *cobra.Command {
	var title, content string

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a post",
		RunE: func(cmd *cobra.Command, args []string) error {
			var p models.Post
			payload := map[string]string{"title": title, "content": content}
			if err := client.Call("POST", "/posts", true, payload, &p); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Created post %s\n", p.ID)
			return nil
		},
	}

	cmd.Flags().StringVar(&title, "title", "", "post title")
	cmd.Flags().StringVar(&content, "content", "", "post content")
	return cmd
}

// ==========================
// UPDATE
// ==========================
func updatePostCmd() *cobra.Command {
	var title, content string

	cmd := &cobra.Command{
		Use:   "update [id]",
		Short: "Change the title and/or content of your post",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			payload := map[string]string{}
			if title != "" {
				payload["title"] = title
			}
			if content != "" {
				payload["content"] = content
			}
			var p models.Post
			if err := client.Call("PUT", "/posts/"+args[0], true, payload, &p); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Updated post %s\n", p.ID)
			return nil
		},
	}

	cmd.Flags().StringVar(&title, "title", "", "new title")
	cmd.Flags().StringVar(&content, "content", "", "new content")
	return cmd
}

// ==========================
// DELETE
// ==========================
func deletePostCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete [id]",
		Short: "Delete your post",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var p models.Post
			if err := client.Call("DELETE", "/posts/"+args[0], true, nil, &p); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted post %q\n", p.Title)
			return nil
		},
	}
}

// ==========================
// LIKE
// ==========================
func likePostCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "like [id]",
		Short: "Like a post, or unlike it if already liked",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var res models.LikeResult
			if err := client.Call("POST", "/posts/"+args[0]+"/like", true, nil, &res); err != nil {
				return err
			}
			verb := "Unliked"
			if res.Liked {
				verb = "Liked"
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s. Post now has %d likes.\n", verb, res.Likes)
			return nil
		},
	}
}

// ==========================
// COMMENT
// ==========================
func commentPostCmd() *cobra.Command {
	var text string

	cmd := &cobra.Command{
		Use:   "comment [id]",
		Short: "Comment on a post",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var c models.Comment
			if err := client.Call("POST", "/posts/"+args[0]+"/comments", true, map[string]string{"text": text}, &c); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Added comment %s\n", c.ID)
			return nil
		},
	}

	cmd.Flags().StringVar(&text, "text", "", "comment text")
	return cmd
}
