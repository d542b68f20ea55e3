package main

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"
)

func cmdByInstructor() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "byinstructor",
		Short: "print a previously written assignment grouped by lecturer",
		RunE:  runByInstructor,
	}
	cmd.Flags().StringVar(&outPath, "in", "", "assignment file to print (defaults to the dataset path with .json)")
	return cmd
}

func runByInstructor(cmd *cobra.Command, args []string) error {
	cfg, err := resolvedConfig()
	if err != nil {
		return err
	}
	logger := mustLogger(cfg)
	defer logger.Sync()

	problem, lessons, values := loadProblemAndAssignment(logger, cfg, outPath)
	placements := buildPlacements(problem, lessons, values)

	byLecturer := make(map[string][]placement)
	var lecturerNames []string
	lecturerLen, courseLen, roomLen := 0, 0, 0
	for _, p := range placements {
		name := p.lesson.Course.Lecturer.Name
		if _, seen := byLecturer[name]; !seen {
			lecturerNames = append(lecturerNames, name)
		}
		byLecturer[name] = append(byLecturer[name], p)
		if len(name) > lecturerLen {
			lecturerLen = len(name)
		}
		if len(p.lesson.Course.Name) > courseLen {
			courseLen = len(p.lesson.Course.Name)
		}
		if len(p.room.Name) > roomLen {
			roomLen = len(p.room.Name)
		}
	}
	sort.Strings(lecturerNames)

	fmt.Println("Schedule by instructor:")
	for _, name := range lecturerNames {
		list := byLecturer[name]
		sort.Slice(list, func(i, j int) bool { return list[i].t < list[j].t })
		for _, p := range list {
			fmt.Printf("%-*s  %-*s  t%-3d  %-*s\n",
				lecturerLen, name,
				courseLen, p.lesson.Course.Name,
				p.t,
				roomLen, p.room.Name)
		}
	}
	return nil
}
