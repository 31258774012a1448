package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"slices"
	"strings"

	"vxtimeline/internal/media"
	"vxtimeline/internal/timeline"
	"vxtimeline/internal/types"
	"vxtimeline/internal/vxerr"

	"github.com/spf13/cobra"
)

func newSettingsCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "settings",
		Short: "Print the resolved project settings",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := a.cfg.Marshal()
			if err != nil {
				return err
			}
			_, err = cmd.OutOrStdout().Write(data)
			return err
		},
	}
}

func newNewCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "new NAME",
		Short: "Print an empty sequence using the project settings",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			seq := a.cfg.Project.NewSequence(args[0])
			seq.AddTrack(timeline.NewTrack(0, "V1", timeline.TrackVideo))
			seq.AddTrack(timeline.NewTrack(1, "A1", timeline.TrackAudio))

			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(seq)
		},
	}
}

func newInspectCmd(a *app) *cobra.Command {
	var libraryPath string

	cmd := &cobra.Command{
		Use:   "inspect FILE",
		Short: "Print the tracks, clips and duration of a sequence dump",
		Long: `Print the tracks, clips and duration of a sequence dump.
With --media, also check every clip's source media against a JSON media
library and fail if any clip refers to media the library does not hold.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			seq, err := a.loadSequence(args[0])
			if err != nil {
				return err
			}
			printSequence(cmd.OutOrStdout(), seq)
			if libraryPath == "" {
				return nil
			}
			return a.checkMedia(cmd.OutOrStdout(), seq, libraryPath)
		},
	}
	cmd.Flags().StringVarP(&libraryPath, "media", "m", "", "Path to a JSON media library to resolve clip sources against")
	return cmd
}

// checkMedia lists clips whose source media is absent from the library at
// path. Library files that vanished from disk are only logged.
func (a *app) checkMedia(w io.Writer, seq *timeline.Sequence, path string) error {
	lib, err := media.LoadLibrary(path, a.log)
	if err != nil {
		return err
	}
	lib.VerifyFiles()

	missing := seq.MissingMedia(lib)
	if len(missing) == 0 {
		fmt.Fprintf(w, "media: all clips resolve (%d items)\n", lib.Count())
		return nil
	}

	fmt.Fprintf(w, "media: %d unresolved\n", len(missing))
	for _, t := range seq.Tracks() {
		for _, c := range t.Clips() {
			if slices.Contains(missing, c.ID()) {
				fmt.Fprintf(w, "  [%d] %s  media %s\n", t.ID, c.Name, c.SourceMedia)
			}
		}
	}
	return vxerr.NotFound(vxerr.DomainMedia, "%d clip(s) in %q reference media missing from %s", len(missing), seq.Name, path)
}

func newAtCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "at FILE TIMECODE",
		Short: "Print the video stack and audio clips at an instant",
		Long: `Print the clips present at TIMECODE (SS.mmm, MM:SS or HH:MM:SS.mmm).
Video clips are listed bottom track first, the order a compositor stacks them.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			seq, err := a.loadSequence(args[0])
			if err != nil {
				return err
			}
			at, err := types.ParseTimecode(args[1])
			if err != nil {
				return err
			}
			a.log.Debugf("Querying %q at %s", seq.Name, at)
			printStack(cmd.OutOrStdout(), "video", seq.VideoClipsAtTime(at), at)
			printStack(cmd.OutOrStdout(), "audio", seq.AudioClipsAtTime(at), at)
			return nil
		},
	}
}

func printSequence(w io.Writer, seq *timeline.Sequence) {
	fmt.Fprintf(w, "Sequence %q  %s fps  %s  duration %s  playhead %s\n",
		seq.Name, seq.FrameRate, seq.Resolution, seq.Duration(), seq.Playhead)

	for _, t := range seq.Tracks() {
		var flags []string
		if t.Muted {
			flags = append(flags, "muted")
		}
		if t.Locked {
			flags = append(flags, "locked")
		}
		fmt.Fprintf(w, "  [%d] %s %s %s\n", t.ID, t.Type(), t.Name, strings.Join(flags, ","))
		for _, c := range t.Clips() {
			fmt.Fprintf(w, "      %s-%s  %s  speed %g  %s\n",
				c.TimelinePosition, c.TimelineEnd(), c.Name, c.Speed, c.BlendMode)
		}
	}
}

func printStack(w io.Writer, kind string, clips []*timeline.Clip, at types.Timecode) {
	fmt.Fprintf(w, "%s (%d)\n", kind, len(clips))
	for i, c := range clips {
		src, _ := c.TimelineToSourceTime(at)
		fmt.Fprintf(w, "  %d %s  source %s  media %s\n", i, c.Name, src, c.SourceMedia)
	}
}
