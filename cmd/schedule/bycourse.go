package main

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"github.com/russross/unitimetable/internal/model"
)

func cmdByCourse() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "bycourse",
		Short: "print a previously written assignment grouped by course",
		RunE:  runByCourse,
	}
	cmd.Flags().StringVar(&outPath, "in", "", "assignment file to print (defaults to the dataset path with .json)")
	return cmd
}

type placement struct {
	lesson *model.Lesson
	t      int
	room   *model.Room
}

func runByCourse(cmd *cobra.Command, args []string) error {
	cfg, err := resolvedConfig()
	if err != nil {
		return err
	}
	logger := mustLogger(cfg)
	defer logger.Sync()

	problem, lessons, values := loadProblemAndAssignment(logger, cfg, outPath)
	placements := buildPlacements(problem, lessons, values)

	byCourse := make(map[string][]placement)
	var courseNames []string
	courseLen, classLen, roomLen := 0, 0, 0
	for _, p := range placements {
		name := p.lesson.Course.Name
		if _, seen := byCourse[name]; !seen {
			courseNames = append(courseNames, name)
		}
		byCourse[name] = append(byCourse[name], p)
		if len(name) > courseLen {
			courseLen = len(name)
		}
		if len(p.lesson.Course.Class.Name) > classLen {
			classLen = len(p.lesson.Course.Class.Name)
		}
		if len(p.room.Name) > roomLen {
			roomLen = len(p.room.Name)
		}
	}
	sort.Strings(courseNames)

	fmt.Println("Schedule by course:")
	for _, name := range courseNames {
		list := byCourse[name]
		sort.Slice(list, func(i, j int) bool {
			if list[i].lesson.Course.Class.Name != list[j].lesson.Course.Class.Name {
				return list[i].lesson.Course.Class.Name < list[j].lesson.Course.Class.Name
			}
			return list[i].t < list[j].t
		})
		for _, p := range list {
			fmt.Printf("%-*s  %-*s  t%-3d  %-*s\n",
				courseLen, name,
				classLen, p.lesson.Course.Class.Name,
				p.t,
				roomLen, p.room.Name)
		}
	}
	return nil
}

func buildPlacements(p *model.Problem, lessons []*model.Lesson, values []model.Value) []placement {
	out := make([]placement, len(lessons))
	for i, lesson := range lessons {
		t, room := p.Decode(values[i])
		out[i] = placement{lesson: lesson, t: t, room: room}
	}
	return out
}
