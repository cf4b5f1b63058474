package catalog

import "little_learners_backend/internal/model"

// MoneyExplorersID is the legacy course whose remote lessons are known to be
// incomplete; its built-in lesson list always wins (see Resolve).
const MoneyExplorersID = "fe6a6e85-bf43-4386-a204-de6481be7248"

const (
	bigThinkersID   = "5f3c9a7e-2d8b-4f5a-9e6c-3d2f1b7e8a9b"
	lifeExplorersID = "6a7b8c9d-0e1f-2a3b-4c5d-6e7f8a9b0c1d"
)

// Entry is one built-in course definition: the course record plus the
// lesson list the catalog guarantees for it.
type Entry struct {
	Course  model.Course
	Lessons []model.Lesson
}

func course(id, title, description string, category model.Category, ageGroup model.AgeGroup) model.Course {
	return model.Course{
		UUIDBase:    model.UUIDBase{ID: id},
		Title:       title,
		Description: description,
		Category:    category,
		AgeGroup:    ageGroup,
	}
}

func lesson(id, courseID, title, description string, order, points int) model.Lesson {
	return model.Lesson{
		UUIDBase:    model.UUIDBase{ID: id},
		CourseID:    courseID,
		Title:       title,
		Description: description,
		OrderNumber: order,
		Points:      points,
	}
}

// builtin is the fixed fallback table, keyed by course identifier. The app's
// known course ids are a mix of legacy UUIDs and age-banded slugs.
var builtin = map[string]Entry{
	MoneyExplorersID: {
		Course: course(MoneyExplorersID, "Money Explorers!",
			"Let's talk about money and work, and how it all makes the world go around",
			model.Career, model.Group5To6),
		Lessons: []model.Lesson{
			lesson("b1c349e6-505e-4423-8a7d-9f25c715b5e2", MoneyExplorersID,
				"What is Money?", "Learn about what money is and how we use it!", 1, 50),
			lesson("568bf1e1-0f99-4fea-a9d4-cba50b82c9a3", MoneyExplorersID,
				"What is Work?", "Learn about different jobs and what working means!", 2, 50),
			lesson("c72a4f5b-6d8e-9f1a-2b3c-4d5e6f7a8b9c", MoneyExplorersID,
				"Wants vs. Needs", "Learn the difference between things we want and things we need!", 3, 50),
			lesson("d83b5g6c-7e9f-0g2b-3h4i-5j6k7l8m9n0p", MoneyExplorersID,
				"Starting Your Business", "Learn how to start your very own business!", 4, 50),
		},
	},
	bigThinkersID: {
		Course: course(bigThinkersID, "Big Thinkers!",
			"Learn to be brave & try new things!", model.Mindset, model.Group5To6),
		Lessons: []model.Lesson{
			lesson("a1b2c3d4-e5f6-7g8h-9i0j-1k2l3m4n5o6p", bigThinkersID,
				"Your Brain is a Superpower!", "Discover how amazing your brain is and what it can do!", 1, 50),
			lesson("b2c3d4e5-f6g7-h8i9-j0k1-l2m3n4o5p6q7", bigThinkersID,
				"Trying is Winning 🏆", "Learn why making an effort is already a big success!", 2, 50),
			lesson("c3d4e5f6-g7h8-i9j0-k1l2-m3n4o5p6q7r8", bigThinkersID,
				"The Magic of Setting Goals", "Learn how to set goals and make them happen!", 3, 50),
		},
	},
	lifeExplorersID: {
		Course: course(lifeExplorersID, "Life Explorers!",
			"Cooking, Cleaning & Independence", model.HomeMaintenance, model.Group5To6),
		Lessons: []model.Lesson{
			lesson("e5f6g7h8-i9j0-k1l2-m3n4-o5p6q7r8s9t0", lifeExplorersID,
				"Making a Snack", "Learn how to make simple, tasty snacks safely!", 1, 35),
			lesson("f6g7h8i9-j0k1-l2m3-n4o5-p6q7r8s9t0u1", lifeExplorersID,
				"Keeping My Space Clean", "Learn how to organize and tidy up your room!", 2, 30),
			lesson("g7h8i9j0-k1l2-m3n4-o5p6-q7r8s9t0u1v2", lifeExplorersID,
				"Getting Ready Like a Pro", "Learn morning and evening routines for independence!", 3, 35),
		},
	},
	"super-thinkers-7-9": {
		Course: course("super-thinkers-7-9", "Super Thinkers",
			"Mindset & Success", model.Mindset, model.Group7To9),
		Lessons: []model.Lesson{
			lesson("st01-your-brain-muscle", "super-thinkers-7-9",
				"Your Brain is a Muscle – Grow It!", "Learn how your brain grows stronger with practice and challenges!", 1, 50),
			lesson("st02-secret-to-winning", "super-thinkers-7-9",
				"The Secret to Winning – Doing the Work!", "Discover how effort and practice lead to success!", 2, 50),
			lesson("st03-problems-business-ideas", "super-thinkers-7-9",
				"Problems = Business Ideas!", "Learn how to turn everyday problems into great business ideas!", 3, 50),
		},
	},
	"money-adventurers-7-9": {
		Course: course("money-adventurers-7-9", "Money Adventurers",
			"Financial Literacy & Entrepreneurship", model.Career, model.Group7To9),
		Lessons: []model.Lesson{
			lesson("ma01-what-is-money", "money-adventurers-7-9",
				"What is Money, Really?", "Discover the true purpose of money and how it works in our world!", 1, 50),
			lesson("ma02-active-passive-income", "money-adventurers-7-9",
				"Active vs. Passive Income", "Learn the difference between working for money and having money work for you!", 2, 50),
			lesson("ma03-first-business", "money-adventurers-7-9",
				"Starting Your First Business!", "Learn the steps to create your very own first business!", 3, 50),
		},
	},
	"future-leaders-7-9": {
		Course: course("future-leaders-7-9", "Future Leaders",
			"Leadership & Communication", model.Mindset, model.Group7To9),
		Lessons: []model.Lesson{
			lesson("fl01-talk-so-people-listen", "future-leaders-7-9",
				"How to Talk So People Listen", "Learn the secrets of effective communication and public speaking!", 1, 50),
			lesson("fl02-secret-to-making-friends", "future-leaders-7-9",
				"The Secret to Making Friends", "Discover how to build strong friendships and connect with others!", 2, 50),
		},
	},
	"helping-hands-7-9": {
		Course: course("helping-hands-7-9", "Helping Hands",
			"How People Help the World", model.Social, model.Group7To9),
		Lessons: []model.Lesson{
			lesson("hh01-what-do-workers-do", "helping-hands-7-9",
				"What Do Workers Do?", "Learn about different jobs and how they help our community!", 1, 50),
			lesson("hh02-helping-in-community", "helping-hands-7-9",
				"Helping In The Community", "Discover ways you can help make your community better!", 2, 50),
		},
	},
	"life-superstars-7-9": {
		Course: course("life-superstars-7-9", "Life Superstars",
			"Cooking, Cleaning & Independence", model.HomeMaintenance, model.Group7To9),
		Lessons: []model.Lesson{
			lesson("ls01-make-breakfast", "life-superstars-7-9",
				"How to Make Breakfast!", "Learn to make delicious and nutritious breakfast meals safely!", 1, 50),
			lesson("ls02-cleaning-like-pro", "life-superstars-7-9",
				"Cleaning Like a Pro", "Master the skills of keeping your spaces clean and organized!", 2, 50),
			lesson("ls03-fixing-things", "life-superstars-7-9",
				"Fixing Things!", "Learn basic repair skills to fix common household problems!", 3, 50),
		},
	},
	"mindset-masters-10-12": {
		Course: course("mindset-masters-10-12", "Mindset Masters",
			"Mindset & Success", model.Mindset, model.Group10To12),
	},
	"money-makers-10-12": {
		Course: course("money-makers-10-12", "Money Makers",
			"Financial Literacy & Entrepreneurship", model.Career, model.Group10To12),
		Lessons: []model.Lesson{
			lesson("mm01-active-passive-income", "money-makers-10-12",
				"Active vs. Passive Income", "Learn the difference between working for money and having money work for you!", 1, 50),
			lesson("mm02-compound-interest", "money-makers-10-12",
				"The Secret of Compound Interest", "Discover how your money can grow exponentially over time!", 2, 50),
			lesson("mm03-401k", "money-makers-10-12",
				"What is a 401k & Why Should You Care?", "Learn about retirement accounts and why starting early is important!", 3, 50),
			lesson("mm04-resume", "money-makers-10-12",
				"What is a Resume?", "Learn how to create a resume that showcases your skills and experience!", 4, 50),
		},
	},
	"lead-the-way-10-12": {
		Course: course("lead-the-way-10-12", "Lead the Way",
			"Leadership & Communication", model.Mindset, model.Group10To12),
		Lessons: []model.Lesson{
			lesson("lw01-leadership-styles", "lead-the-way-10-12",
				"Understanding Leadership Styles", "Learn about different ways to lead and when to use each approach!", 1, 50),
			lesson("lw02-communication", "lead-the-way-10-12",
				"Effective Communication", "Master the art of clear communication with friends, family, and teams!", 2, 50),
			lesson("lw03-team-building", "lead-the-way-10-12",
				"Building Great Teams", "Learn how to bring people together and create successful teams!", 3, 50),
			lesson("lw04-likable", "lead-the-way-10-12",
				"How to Be Instantly Likable", "Discover the secrets to making a great first impression and connecting with others!", 4, 50),
			lesson("lw05-arguments", "lead-the-way-10-12",
				"How to Win Any Argument (Without Fighting!)", "Learn how to express your ideas and resolve disagreements in a positive way!", 5, 50),
		},
	},
	"world-of-work-10-12": {
		Course: course("world-of-work-10-12", "The World of Work",
			"How People Help the World", model.Social, model.Group10To12),
		Lessons: []model.Lesson{
			lesson("ww01-career-exploration", "world-of-work-10-12",
				"Exploring Different Careers", "Discover the wide variety of jobs and careers available in today's world!", 1, 50),
			lesson("ww02-workplace-skills", "world-of-work-10-12",
				"Essential Workplace Skills", "Learn the key skills that make someone successful in any job!", 2, 50),
			lesson("ww03-problem-solving", "world-of-work-10-12",
				"Creative Problem Solving", "Master techniques to solve problems creatively in any situation!", 3, 50),
		},
	},
	"life-ready-10-12": {
		Course: course("life-ready-10-12", "Life Ready",
			"Cooking, Cleaning & Independence", model.HomeMaintenance, model.Group10To12),
		Lessons: []model.Lesson{
			lesson("lr01-meal-planning", "life-ready-10-12",
				"Meal Planning and Prep", "Learn how to plan and prepare healthy meals for yourself and others!", 1, 50),
			lesson("lr02-household-management", "life-ready-10-12",
				"Household Management", "Master the skills of keeping a clean, organized, and well-run home!", 2, 50),
			lesson("lr03-basic-repairs", "life-ready-10-12",
				"Basic Home Repairs", "Learn how to fix common household problems safely and effectively!", 3, 50),
		},
	},
}

// Lookup returns the built-in entry for a course identifier, copying the
// lesson slice so callers can merge and sort freely.
func Lookup(courseID string) (Entry, bool) {
	e, ok := builtin[courseID]
	if !ok {
		return Entry{}, false
	}
	lessons := make([]model.Lesson, len(e.Lessons))
	copy(lessons, e.Lessons)
	e.Lessons = lessons
	return e, true
}

// All returns every built-in entry, used to seed an empty database.
func All() []Entry {
	entries := make([]Entry, 0, len(builtin))
	for _, e := range builtin {
		lessons := make([]model.Lesson, len(e.Lessons))
		copy(lessons, e.Lessons)
		e.Lessons = lessons
		entries = append(entries, e)
	}
	return entries
}
