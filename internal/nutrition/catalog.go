package nutrition

import "github.com/NextGenXplorer/NutriGuide/internal/model"

type mealOptions struct {
	breakfast []string
	lunch     []string
	dinner    []string
	snacks    []string
}

// vegetarianCatalog is the only catalog; it serves every dietary preference.
var vegetarianCatalog = map[model.Goal]mealOptions{
	model.GoalLose: {
		breakfast: []string{
			"Oatmeal with berries and almonds (~300 cal) - High fiber, protein-rich",
			"Greek yogurt with chia seeds and honey (~250 cal) - Probiotic, omega-3",
			"Vegetable poha with peanuts (~280 cal) - Light, nutritious",
			"Smoothie bowl with banana, spinach, protein powder (~320 cal) - Vitamin-packed",
		},
		lunch: []string{
			"Quinoa salad with chickpeas, cucumber, tomatoes (~400 cal) - Complete protein, fiber",
			"Brown rice with dal and steamed vegetables (~420 cal) - Balanced, filling",
			"Whole wheat wrap with paneer and veggies (~380 cal) - Protein-rich",
			"Vegetable khichdi with curd (~350 cal) - Easy to digest, comforting",
		},
		dinner: []string{
			"Grilled vegetables with tofu (~300 cal) - Low-cal, high protein",
			"Vegetable soup with multigrain bread (~280 cal) - Light, satisfying",
			"Palak paneer with roti (~350 cal) - Iron, calcium-rich",
			"Stir-fried vegetables with brown rice (~320 cal) - Fiber-rich",
		},
		snacks: []string{
			"Apple with peanut butter (~150 cal)",
			"Carrot sticks with hummus (~120 cal)",
			"Roasted chickpeas (~130 cal)",
			"Mixed nuts (small handful ~160 cal)",
		},
	},
	model.GoalMaintain: {
		breakfast: []string{
			"Whole wheat toast with avocado and eggs (~400 cal) - Healthy fats, protein",
			"Upma with vegetables and coconut chutney (~380 cal) - Energizing",
			"Masala dosa with sambar (~420 cal) - Traditional, balanced",
			"Paneer paratha with curd (~450 cal) - Protein-packed",
		},
		lunch: []string{
			"Rice with rajma and salad (~500 cal) - Complete protein, fiber",
			"Chole with brown rice and raita (~520 cal) - Satisfying, nutritious",
			"Vegetable biryani with raita (~550 cal) - Flavorful, balanced",
			"Mixed dal with roti and vegetables (~480 cal) - Traditional, wholesome",
		},
		dinner: []string{
			"Paneer tikka with quinoa (~450 cal) - High protein",
			"Vegetable curry with brown rice (~420 cal) - Nutrient-dense",
			"Mushroom masala with roti (~400 cal) - Umami-rich",
			"Dal makhani with jeera rice (~480 cal) - Protein-rich, comforting",
		},
		snacks: []string{
			"Fruit chaat (~180 cal)",
			"Sprouted moong salad (~160 cal)",
			"Paneer cubes with mint chutney (~200 cal)",
			"Trail mix (~190 cal)",
		},
	},
	model.GoalGain: {
		breakfast: []string{
			"Banana smoothie with oats, peanut butter, milk (~500 cal) - Calorie-dense",
			"Aloo paratha with butter and curd (~550 cal) - High-energy",
			"Idli with coconut chutney and sambhar (~480 cal) - Carb-rich",
			"Stuffed paneer sandwich with cheese (~520 cal) - Protein-packed",
		},
		lunch: []string{
			"Paneer butter masala with naan and rice (~700 cal) - Rich, satisfying",
			"Rajma chawal with raita and salad (~650 cal) - Complete meal",
			"Vegetable pulao with paneer curry (~680 cal) - Wholesome",
			"Chole bhature with lassi (~720 cal) - Traditional, filling",
		},
		dinner: []string{
			"Stuffed capsicum with rice (~550 cal) - Nutrient-dense",
			"Paneer tikka masala with naan (~600 cal) - Protein-rich",
			"Mixed vegetable curry with paratha (~580 cal) - Balanced",
			"Palak paneer with rice and dal (~620 cal) - Iron-rich",
		},
		snacks: []string{
			"Peanut butter banana sandwich (~300 cal)",
			"Protein shake with fruits (~280 cal)",
			"Cheese and crackers (~250 cal)",
			"Dry fruits and nuts mix (~320 cal)",
		},
	},
}

func catalogFor(goal model.Goal) mealOptions {
	if opts, ok := vegetarianCatalog[goal]; ok {
		return opts
	}
	return vegetarianCatalog[model.GoalMaintain]
}
