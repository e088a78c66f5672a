package scanner

var CountDependencies = countDependencies
